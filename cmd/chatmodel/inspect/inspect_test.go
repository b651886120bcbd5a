package inspectcmder

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/chatmodel/pkg/config"
)

const sampleResponse = `{
  "metadata": {
    "id": "chatcmpl-42",
    "model": "test-model",
    "usage": {"prompt_tokens": 12, "completion_tokens": 8}
  },
  "results": [
    {"output": {"role": "assistant", "content": "The answer is 42."}, "metadata": {"finish_reason": "stop"}},
    {"output": {"role": "assistant", "content": "Forty-two."}, "metadata": {"finish_reason": "length"}}
  ],
  "advisor_context": {"conversation_id": "conv-1", "retrieved_docs": 3}
}`

var _ = Describe("Inspect Command", func() {
	var (
		tmpDir string
		input  string
		out    *bytes.Buffer
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		Expect(os.Setenv(config.EnvConfigPath, filepath.Join(tmpDir, "config.toml"))).To(Succeed())
		DeferCleanup(os.Unsetenv, config.EnvConfigPath)

		input = filepath.Join(tmpDir, "response.json")
		Expect(os.WriteFile(input, []byte(sampleResponse), 0o600)).To(Succeed())

		out = &bytes.Buffer{}
	})

	run := func(args ...string) error {
		cmd := NewInspectCmd()
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	It("prints a summary of the response", func() {
		Expect(run(input)).To(Succeed())

		Expect(out.String()).To(MatchRegexp(`Hash:\s+[a-f0-9]{64}`))
		Expect(out.String()).To(ContainSubstring("chatcmpl-42"))
		Expect(out.String()).To(ContainSubstring("12 prompt, 8 completion, 20 total"))
		Expect(out.String()).To(MatchRegexp(`Results:\s+2`))
		Expect(out.String()).To(ContainSubstring("The answer is 42."))
		Expect(out.String()).To(ContainSubstring("conversation_id, retrieved_docs"))
	})

	It("prints the full rendering with --full", func() {
		Expect(run("--full", input)).To(Succeed())

		Expect(out.String()).To(HavePrefix("ChatResponse{"))
		Expect(out.String()).To(ContainSubstring("conversation_id:conv-1"))
	})

	It("reads from stdin", func() {
		cmd := NewInspectCmd()
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetIn(strings.NewReader(sampleResponse))
		cmd.SetArgs([]string{"-"})

		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).NotTo(ContainSubstring("Forty-two."))
		Expect(out.String()).To(ContainSubstring("The answer is 42."))
	})

	It("reports empty responses", func() {
		Expect(os.WriteFile(input, []byte(`{"results": []}`), 0o600)).To(Succeed())

		Expect(run(input)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Metadata:    (empty)"))
		Expect(out.String()).To(ContainSubstring("(no result)"))
	})

	It("fails on documents without results", func() {
		Expect(os.WriteFile(input, []byte(`{"metadata": {}}`), 0o600)).To(Succeed())

		err := run(input)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("results"))
	})

	It("fails on missing files", func() {
		Expect(run(filepath.Join(tmpDir, "missing.json"))).NotTo(Succeed())
	})
})
