package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"

	api "github.com/kubev2v/patchcord-planner/api/v1alpha1"
	apiserver "github.com/kubev2v/patchcord-planner/internal/api_server"
	"github.com/kubev2v/patchcord-planner/internal/cli"
	"github.com/kubev2v/patchcord-planner/internal/config"
	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

func execute(cmd *cobra.Command, args ...string) (string, error) {
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

var _ = Describe("planner cli", func() {
	Context("calculate", func() {
		It("computes a cross-rack link from rack indices", func() {
			out, err := execute(cli.NewCmdCalculate(),
				"--rack1", "1", "--unit1", "10", "--rack2", "3", "--unit2", "40", "-o", "json")
			Expect(err).To(BeNil())

			var resp api.CalculationResponse
			Expect(json.Unmarshal([]byte(out), &resp)).To(Succeed())
			Expect(resp.SameRack).To(BeFalse())
			Expect(resp.RawTotalM).To(BeNumerically("~", 5.4, 1e-9))
			Expect(resp.RecommendedPatchCordM).To(Equal(7.5))
			Expect(resp.SlackAddedM).To(BeNumerically("~", 0.4, 1e-9))
		})

		It("computes a same-rack link", func() {
			out, err := execute(cli.NewCmdCalculate(),
				"--rack1", "1", "--unit1", "10", "--rack2", "1", "--unit2", "30", "-o", "json")
			Expect(err).To(BeNil())

			var resp api.CalculationResponse
			Expect(json.Unmarshal([]byte(out), &resp)).To(Succeed())
			Expect(resp.SameRack).To(BeTrue())
			Expect(resp.RecommendedPatchCordM).To(Equal(2.0))
			Expect(resp.SlackAddedM).To(BeZero())
		})

		It("resolves rack codes through the generated plan", func() {
			out, err := execute(cli.NewCmdCalculate(),
				"--rack1", "02b03", "--unit1", "10", "--rack2", "02b05", "--unit2", "40", "-o", "yaml")
			Expect(err).To(BeNil())

			var resp api.CalculationResponse
			Expect(yaml.Unmarshal([]byte(out), &resp)).To(Succeed())
			Expect(resp.ServerA.RackIndex).To(Equal(1))
			Expect(resp.ServerB.RackIndex).To(Equal(3))
			Expect(resp.RecommendedPatchCordM).To(Equal(7.5))
		})

		It("applies the slack given in centimetres", func() {
			out, err := execute(cli.NewCmdCalculate(),
				"--rack1", "1", "--unit1", "10", "--rack2", "3", "--unit2", "40", "--slack-cm", "0", "-o", "json")
			Expect(err).To(BeNil())

			var resp api.CalculationResponse
			Expect(json.Unmarshal([]byte(out), &resp)).To(Succeed())
			Expect(resp.RawTotalM).To(BeNumerically("~", 5.0, 1e-9))
			Expect(resp.RecommendedPatchCordM).To(Equal(5.0))
		})

		It("renders a human readable panel by default", func() {
			out, err := execute(cli.NewCmdCalculate(),
				"--rack1", "1", "--unit1", "10", "--rack2", "3", "--unit2", "40")
			Expect(err).To(BeNil())
			Expect(out).To(ContainSubstring("Recommended cord"))
			Expect(out).To(ContainSubstring("7.50 m"))
		})

		It("rejects an out of range unit", func() {
			_, err := execute(cli.NewCmdCalculate(),
				"--rack1", "1", "--unit1", "51", "--rack2", "2", "--unit2", "1")
			Expect(err).NotTo(BeNil())
			Expect(err.Error()).To(ContainSubstring("unit"))
		})

		It("rejects an unknown rack code", func() {
			_, err := execute(cli.NewCmdCalculate(),
				"--rack1", "02b99", "--unit1", "1", "--rack2", "02b03", "--unit2", "1")
			Expect(err).NotTo(BeNil())
			Expect(err.Error()).To(ContainSubstring("02b99"))
		})

		It("rejects a negative slack", func() {
			_, err := execute(cli.NewCmdCalculate(),
				"--rack1", "1", "--unit1", "1", "--rack2", "2", "--unit2", "1", "--slack-cm=-5")
			Expect(err).NotTo(BeNil())
		})

		It("rejects a rack index mixed with a rack code", func() {
			_, err := execute(cli.NewCmdCalculate(),
				"--rack1", "1", "--unit1", "1", "--rack2", "02b04", "--unit2", "1")
			Expect(err).To(MatchError(ContainSubstring("mix a rack index and a rack code")))

			_, err = execute(cli.NewCmdCalculate(),
				"--rack1", "02b03", "--unit1", "1", "--rack2", "2", "--unit2", "1")
			Expect(err).To(MatchError(ContainSubstring("mix a rack index and a rack code")))
		})

		It("rejects rack indices with --remote", func() {
			_, err := execute(cli.NewCmdCalculate(),
				"--rack1", "1", "--unit1", "1", "--rack2", "2", "--unit2", "1", "--remote")
			Expect(err).To(MatchError(ContainSubstring("rack codes")))
		})

		It("rejects an unknown output format", func() {
			_, err := execute(cli.NewCmdCalculate(),
				"--rack1", "1", "--unit1", "1", "--rack2", "2", "--unit2", "1", "-o", "xml")
			Expect(err).To(MatchError(ContainSubstring("output format")))
		})
	})

	Context("against the API server", func() {
		var server *httptest.Server

		BeforeEach(func() {
			cfg, err := config.Load("")
			Expect(err).To(BeNil())
			srv := apiserver.New(cfg, rackplan.DefaultPlan(rackplan.DefaultRange()), nil)
			server = httptest.NewServer(srv.Handler(nil))
		})

		AfterEach(func() {
			server.Close()
		})

		It("calculates remotely", func() {
			out, err := execute(cli.NewCmdCalculate(), "--server-url", server.URL, "--remote",
				"--rack1", "02b03", "--unit1", "10", "--rack2", "02b05", "--unit2", "40", "-o", "json")
			Expect(err).To(BeNil())

			var resp api.CalculationResponse
			Expect(json.Unmarshal([]byte(out), &resp)).To(Succeed())
			Expect(resp.RecommendedPatchCordM).To(Equal(7.5))
		})

		It("lists the remote racks", func() {
			out, err := execute(cli.NewCmdRacks(), "--server-url", server.URL, "--remote", "-o", "json")
			Expect(err).To(BeNil())

			var list api.RackList
			Expect(json.Unmarshal([]byte(out), &list)).To(Succeed())
			Expect(list.Racks).To(HaveLen(16))
		})

		It("reports the remote error message", func() {
			_, err := execute(cli.NewCmdCalculate(), "--server-url", server.URL, "--remote",
				"--rack1", "02b99", "--unit1", "10", "--rack2", "02b05", "--unit2", "40")
			Expect(err).To(MatchError(ContainSubstring("400")))
		})

		It("prints the remote info", func() {
			out, err := execute(cli.NewCmdInfo(), "--server-url", server.URL, "--remote", "-o", "json")
			Expect(err).To(BeNil())
			Expect(out).To(ContainSubstring("versionName"))
		})
	})

	Context("racks", func() {
		It("lists the generated plan", func() {
			out, err := execute(cli.NewCmdRacks(), "--range-start", "02b03", "--range-end", "02b05", "-o", "yaml")
			Expect(err).To(BeNil())

			var list api.RackList
			Expect(yaml.Unmarshal([]byte(out), &list)).To(Succeed())
			Expect(list.Racks).To(Equal([]api.Rack{
				{Code: "02b03", Index: 1},
				{Code: "02b04", Index: 2},
				{Code: "02b05", Index: 3},
			}))
		})

		It("rejects an inverted range", func() {
			_, err := execute(cli.NewCmdRacks(), "--range-start", "02b10", "--range-end", "02b03")
			Expect(err).NotTo(BeNil())
		})
	})

	Context("plan", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "plan-*")
			Expect(err).To(BeNil())
			DeferCleanup(os.RemoveAll, dir)
		})

		writeLinks := func(content string) string {
			path := filepath.Join(dir, "links.yaml")
			Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
			return path
		}

		It("computes every link and the bill of materials", func() {
			path := writeLinks(`links:
  - server_a: {rack_code: 02b03, unit: 10, hostname: db-01}
    server_b: {rack_code: 02b05, unit: 40}
  - server_a: {rack_code: 02b04, unit: 1}
    server_b: {rack_code: 02b04, unit: 2}
  - server_a: {rack_code: 02b06, unit: 5}
    server_b: {rack_code: 02b06, unit: 6}
`)
			out, err := execute(cli.NewCmdPlan(), "-f", path, "-o", "json")
			Expect(err).To(BeNil())

			var resp api.BatchCalculationResponse
			Expect(json.Unmarshal([]byte(out), &resp)).To(Succeed())
			Expect(resp.Results).To(HaveLen(3))
			Expect(resp.Results[0].RecommendedPatchCordM).To(Equal(7.5))
			Expect(resp.BillOfMaterials.TotalCords).To(Equal(3))
			Expect(resp.BillOfMaterials.SameRackLinks).To(Equal(2))
			Expect(resp.BillOfMaterials.CrossRackLinks).To(Equal(1))
			Expect(resp.BillOfMaterials.Lines).To(HaveLen(2))
			Expect(resp.BillOfMaterials.Lines[0].LengthM).To(Equal(1.0))
			Expect(resp.BillOfMaterials.Lines[0].Count).To(Equal(2))
		})

		It("renders the bill of materials", func() {
			path := writeLinks(`links:
  - server_a: {rack_code: 02b04, unit: 1}
    server_b: {rack_code: 02b04, unit: 2}
`)
			out, err := execute(cli.NewCmdPlan(), "-f", path)
			Expect(err).To(BeNil())
			Expect(out).To(ContainSubstring("Bill of materials"))
		})

		It("rejects an invalid link", func() {
			path := writeLinks(`links:
  - server_a: {rack_code: 02b04, unit: 0}
    server_b: {rack_code: 02b04, unit: 2}
`)
			_, err := execute(cli.NewCmdPlan(), "-f", path)
			Expect(err).To(MatchError(ContainSubstring("links[0].server_a.unit")))
		})

		It("rejects an empty file", func() {
			path := writeLinks("links: []\n")
			_, err := execute(cli.NewCmdPlan(), "-f", path)
			Expect(err).NotTo(BeNil())
		})

		It("fails on a missing file", func() {
			_, err := execute(cli.NewCmdPlan(), "-f", filepath.Join(dir, "missing.yaml"))
			Expect(err).NotTo(BeNil())
		})
	})

	Context("version", func() {
		It("prints the version", func() {
			out, err := execute(cli.NewCmdVersion())
			Expect(err).To(BeNil())
			Expect(out).To(ContainSubstring("Patch-cord Planner Version"))
		})
	})
})
