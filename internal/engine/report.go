package engine

import "github.com/protobuild/protoslice/internal/partition"

// Report is the JSON-friendly view of a partitioning result, one entry per
// module in generation order.
type Report struct {
	Modules  []ModuleReport `json:"modules"`
	Warnings []string       `json:"warnings"`
	Errors   []string       `json:"errors"`
}

// ModuleReport summarizes one partition.
type ModuleReport struct {
	// Name is the module name.
	Name string `json:"name"`

	// Types are the fully-qualified names this module generates.
	Types []string `json:"types"`

	// Upstream lists types the module references but borrows from
	// upstream modules.
	Upstream []UpstreamType `json:"upstream,omitempty"`

	// Files are the proto files present in the module's slice.
	Files []string `json:"files"`
}

// UpstreamType attributes a borrowed type to its owning module.
type UpstreamType struct {
	Type   string `json:"type"`
	Module string `json:"module"`
}

// BuildReport converts a partitioned schema into its report form.
func BuildReport(p *partition.PartitionedSchema) *Report {
	report := &Report{
		Modules:  make([]ModuleReport, 0, len(p.Modules())),
		Warnings: p.Warnings,
		Errors:   p.Errors,
	}
	for _, name := range p.Modules() {
		part, _ := p.Partition(name)

		mr := ModuleReport{Name: name}
		for _, id := range part.Types {
			mr.Types = append(mr.Types, id.String())
		}
		for _, id := range part.TransitiveUpstreamTypes.Types() {
			owner, _ := part.TransitiveUpstreamTypes.Owner(id)
			mr.Upstream = append(mr.Upstream, UpstreamType{
				Type:   id.String(),
				Module: owner,
			})
		}
		for _, f := range part.Schema.Files() {
			mr.Files = append(mr.Files, f.Path)
		}
		report.Modules = append(report.Modules, mr)
	}
	return report
}
