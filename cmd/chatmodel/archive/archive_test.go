package archivecmder

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/chatmodel/pkg/archive"
	"github.com/papercomputeco/chatmodel/pkg/config"
	"github.com/papercomputeco/chatmodel/pkg/llm"
)

var _ = Describe("Archive Command", func() {
	var (
		ctx    context.Context
		tmpDir string
		dbPath string
		out    *bytes.Buffer
	)

	BeforeEach(func() {
		ctx = context.Background()
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "archive.db")
		out = &bytes.Buffer{}

		Expect(os.Setenv(config.EnvConfigPath, filepath.Join(tmpDir, "config.toml"))).To(Succeed())
		DeferCleanup(os.Unsetenv, config.EnvConfigPath)
	})

	makeResponse := func(content string) *llm.ChatResponse {
		resp, err := llm.NewChatResponseWithContext(
			[]llm.Generation{llm.NewGeneration(content, llm.FinishReasonStop)},
			llm.ResponseMetadata{Model: "test-model", Usage: llm.Usage{PromptTokens: 4, CompletionTokens: 6}},
			llm.AdvisorContext{"source": content},
		)
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	writeResponse := func(name string, resp *llm.ChatResponse) string {
		data, err := json.Marshal(resp)
		Expect(err).NotTo(HaveOccurred())
		path := filepath.Join(tmpDir, name)
		Expect(os.WriteFile(path, data, 0o600)).To(Succeed())
		return path
	}

	run := func(args ...string) error {
		cmd := NewArchiveCmd()
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		return cmd.ExecuteContext(ctx)
	}

	Describe("put", func() {
		It("archives new responses and skips duplicates", func() {
			first := writeResponse("first.json", makeResponse("first"))
			again := writeResponse("again.json", makeResponse("first"))

			Expect(run("put", "--sqlite", dbPath, first, again)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("Archived 1 new responses (1 already existed)"))

			storer, err := archive.NewSQLiteStorer(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer storer.Close()

			entries, err := storer.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Hash).To(Equal(makeResponse("first").Hash()))
		})

		It("fails on invalid documents", func() {
			bad := filepath.Join(tmpDir, "bad.json")
			Expect(os.WriteFile(bad, []byte(`{"metadata": {}}`), 0o600)).To(Succeed())

			Expect(run("put", "--sqlite", dbPath, bad)).NotTo(Succeed())
		})

		It("uses the configured archive path", func() {
			path := writeResponse("configured.json", makeResponse("configured"))

			Expect(run("put", path)).To(Succeed())

			_, err := os.Stat(filepath.Join(tmpDir, "archive.db"))
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("get", func() {
		It("prints the archived response as JSON", func() {
			resp := makeResponse("fetch me")
			Expect(run("put", "--sqlite", dbPath, writeResponse("fetch.json", resp))).To(Succeed())
			out.Reset()

			Expect(run("get", "--sqlite", dbPath, resp.Hash())).To(Succeed())

			var decoded llm.ChatResponse
			Expect(json.Unmarshal(out.Bytes(), &decoded)).To(Succeed())
			Expect(decoded.Equal(resp)).To(BeTrue())
		})

		It("fails for unknown hashes", func() {
			err := run("get", "--sqlite", dbPath, "nonexistent")
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(archive.ErrNotFound{}))
		})
	})

	Describe("list", func() {
		It("reports an empty archive", func() {
			Expect(run("list", "--sqlite", dbPath)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("No archived responses."))
		})

		It("lists archived responses", func() {
			resp := makeResponse("listed")
			Expect(run("put", "--sqlite", dbPath, writeResponse("listed.json", resp))).To(Succeed())
			out.Reset()

			Expect(run("list", "--sqlite", dbPath)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("HASH"))
			Expect(out.String()).To(ContainSubstring(resp.Hash()))
			Expect(out.String()).To(ContainSubstring("test-model"))
		})
	})

	Describe("merge", func() {
		seed := func(path string, contents ...string) {
			storer, err := archive.NewSQLiteStorer(path)
			Expect(err).NotTo(HaveOccurred())
			defer storer.Close()
			for _, c := range contents {
				_, _, err := storer.Put(ctx, makeResponse(c))
				Expect(err).NotTo(HaveOccurred())
			}
		}

		It("unions source archives into the target", func() {
			src1 := filepath.Join(tmpDir, "src1.db")
			src2 := filepath.Join(tmpDir, "src2.db")
			seed(src1, "a", "b")
			seed(src2, "b", "c")
			seed(dbPath, "a")

			Expect(run("merge", "--sqlite", dbPath, src1, src2)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("Merged 2 new responses from 2 sources (2 already existed)"))

			storer, err := archive.NewSQLiteStorer(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer storer.Close()

			entries, err := storer.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(3))
		})

		It("is idempotent", func() {
			src := filepath.Join(tmpDir, "src.db")
			seed(src, "only")

			Expect(run("merge", "--sqlite", dbPath, src)).To(Succeed())
			Expect(run("merge", "--sqlite", dbPath, src)).To(Succeed())

			storer, err := archive.NewSQLiteStorer(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer storer.Close()

			entries, err := storer.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		})
	})
})
