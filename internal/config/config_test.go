package config

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/philipparndt/gogdf/pkg/gdf"
)

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
	return path
}

var _ = Describe("Load", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	Context("with a YAML file", func() {
		It("should override only the given keys", func() {
			path := writeFile(dir, "gogdf.yaml", `
validation:
  min_area_factor: 1.0e-8
  self_intersection: warning
  strict: true
output:
  annotate: true
`)
			cfg, err := Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Validation.MinAreaFactor).To(Equal(1e-8))
			Expect(cfg.Validation.SelfIntersection).To(Equal(gdf.SeverityWarning))
			Expect(cfg.Validation.Strict).To(BeTrue())
			Expect(cfg.Validation.CoincidenceFactor).To(Equal(gdf.DefaultCoincidenceFactor))
			Expect(cfg.Output.Annotate).To(BeTrue())
			Expect(cfg.Output.Precision).To(Equal(-1))
		})

		It("should reject an unknown severity", func() {
			path := writeFile(dir, "gogdf.yml", "validation:\n  self_intersection: fatal\n")
			_, err := Load(path)
			Expect(err).To(HaveOccurred())
		})
	})

	Context("with a TOML file", func() {
		It("should decode nested tables", func() {
			path := writeFile(dir, "gogdf.toml", `
[validation]
coincidence_factor = 1e-5
header_max_length = 40

[log]
level = "debug"
format = "json"
`)
			cfg, err := Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Validation.CoincidenceFactor).To(Equal(1e-5))
			Expect(cfg.Validation.HeaderMaxLength).To(Equal(40))
			Expect(cfg.Log.Level).To(Equal("debug"))
			Expect(cfg.Log.Format).To(Equal("json"))
			Expect(cfg.Validation.SelfIntersection).To(Equal(gdf.SeverityError))
		})

		It("should report syntax errors", func() {
			path := writeFile(dir, "gogdf.toml", "[validation\n")
			_, err := Load(path)
			Expect(err).To(MatchError(ContainSubstring("TOML parse error")))
		})
	})

	Context("with invalid thresholds", func() {
		It("should wrap ErrInvalidConfig", func() {
			path := writeFile(dir, "gogdf.yaml", "validation:\n  coincidence_factor: 0\n")
			_, err := Load(path)
			Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())
		})
	})

	It("should fail for a missing file", func() {
		_, err := Load(filepath.Join(dir, "absent.yaml"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Discover", func() {
	It("should prefer YAML over TOML", func() {
		dir := GinkgoT().TempDir()
		Expect(Discover(dir)).To(BeEmpty())

		writeFile(dir, ".gogdf.toml", "")
		Expect(Discover(dir)).To(Equal(filepath.Join(dir, ".gogdf.toml")))

		writeFile(dir, ".gogdf.yaml", "")
		Expect(Discover(dir)).To(Equal(filepath.Join(dir, ".gogdf.yaml")))
	})
})

var _ = Describe("ParserOptions", func() {
	It("should apply the configured thresholds to the parser", func() {
		cfg := Default()
		cfg.Validation.SelfIntersection = gdf.SeverityWarning

		bowtie := "hdr\n1 9.8\n0 0\n1\n0 0 -1 2 2 -1 2 0 -1 0 1 -1\n"
		model, diags := gdf.Parse(bowtie, cfg.ParserOptions(nil)...)
		Expect(model).NotTo(BeNil())
		Expect(diags.WithCode(gdf.CodeSelfIntersection)).To(HaveLen(1))
		Expect(diags.HasErrors()).To(BeFalse())
	})

	It("should match the parser defaults", func() {
		cfg := Default()
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.WriteOptions()).To(Equal(gdf.DefaultWriteOptions()))
	})
})
