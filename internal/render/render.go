// Package render writes schema slices back out as .proto source text so a
// build system can feed each module's generator its minimal slice. Stubbed
// declarations render as empty bodies; identities and nesting are preserved.
package render

import (
	"fmt"
	"strings"

	"github.com/protobuild/protoslice/internal/protomodel"
)

// File renders one proto file to source text.
func File(f *protomodel.File) string {
	var b strings.Builder
	if f.Package != "" {
		fmt.Fprintf(&b, "package %s;\n", f.Package)
	}
	for _, t := range f.Types {
		b.WriteString("\n")
		writeType(&b, t, 0)
	}
	for _, svc := range f.Services {
		b.WriteString("\n")
		writeService(&b, svc)
	}
	return b.String()
}

func writeType(b *strings.Builder, t protomodel.Type, depth int) {
	pad := strings.Repeat("  ", depth)
	switch v := t.(type) {
	case *protomodel.Message:
		fmt.Fprintf(b, "%smessage %s {\n", pad, simpleName(v.Name))
		writeMessageBody(b, v, depth+1)
		fmt.Fprintf(b, "%s}\n", pad)
	case *protomodel.Enum:
		fmt.Fprintf(b, "%senum %s {\n", pad, simpleName(v.Name))
		inner := strings.Repeat("  ", depth+1)
		for _, o := range v.Options {
			fmt.Fprintf(b, "%soption %s = %s;\n", inner, o.Name, o.Value)
		}
		for _, c := range v.Constants {
			fmt.Fprintf(b, "%s%s = %d;\n", inner, c.Name, c.Value)
		}
		fmt.Fprintf(b, "%s}\n", pad)
	case *protomodel.Enclosing:
		fmt.Fprintf(b, "%smessage %s {\n", pad, simpleName(v.Name))
		for _, nested := range v.Nested {
			writeType(b, nested, depth+1)
		}
		fmt.Fprintf(b, "%s}\n", pad)
	}
}

func writeMessageBody(b *strings.Builder, m *protomodel.Message, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, o := range m.Options {
		fmt.Fprintf(b, "%soption %s = %s;\n", pad, o.Name, o.Value)
	}
	for _, f := range m.Fields {
		fmt.Fprintf(b, "%s%s%s %s = %d;\n", pad, fieldLabel(f), f.TypeName, f.Name, f.Tag)
	}
	for _, f := range m.Extensions {
		fmt.Fprintf(b, "%sextend %s {\n", pad, f.Extendee)
		fmt.Fprintf(b, "%s  %s%s %s = %d;\n", pad, fieldLabel(f), f.TypeName, f.Name, f.Tag)
		fmt.Fprintf(b, "%s}\n", pad)
	}
	for _, nested := range m.Nested {
		writeType(b, nested, depth)
	}
}

func writeService(b *strings.Builder, svc *protomodel.Service) {
	fmt.Fprintf(b, "service %s {\n", simpleName(svc.Name))
	for _, o := range svc.Options {
		fmt.Fprintf(b, "  option %s = %s;\n", o.Name, o.Value)
	}
	for _, m := range svc.Methods {
		req := m.RequestType
		if m.ClientStreaming {
			req = "stream " + req
		}
		resp := m.ResponseType
		if m.ServerStreaming {
			resp = "stream " + resp
		}
		fmt.Fprintf(b, "  rpc %s (%s) returns (%s);\n", m.Name, req, resp)
	}
	b.WriteString("}\n")
}

func fieldLabel(f protomodel.Field) string {
	switch {
	case f.Repeated:
		return "repeated "
	case f.Optional:
		return "optional "
	default:
		return ""
	}
}

func simpleName(id protomodel.ProtoType) string {
	s := string(id)
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		return s[idx+1:]
	}
	return s
}
