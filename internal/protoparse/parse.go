// Package protoparse loads .proto source files into the protomodel schema.
// Parsing is delegated to github.com/emicklei/proto; this package maps its
// syntax tree onto the closed type variant set, computing fully-qualified
// identities as it descends.
package protoparse

import (
	"fmt"
	"io"
	"os"

	"github.com/emicklei/proto"

	"github.com/protobuild/protoslice/internal/protomodel"
)

// ParseFiles parses the given .proto paths, in order, into one schema.
func ParseFiles(paths []string) (*protomodel.Schema, error) {
	files := make([]*protomodel.File, 0, len(paths))
	for _, path := range paths {
		f, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return protomodel.NewSchema(files), nil
}

// ParseFile parses a single .proto file from disk.
func ParseFile(path string) (*protomodel.File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open proto file: %w", err)
	}
	defer r.Close()
	return Parse(path, r)
}

// Parse parses .proto source from r. The path is used for the file's Path
// and for parse error positions.
func Parse(path string, r io.Reader) (*protomodel.File, error) {
	parser := proto.NewParser(r)
	parser.Filename(path)
	definition, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	file := &protomodel.File{Path: path}
	for _, elem := range definition.Elements {
		switch e := elem.(type) {
		case *proto.Package:
			file.Package = e.Name
		}
	}

	scope := protomodel.ProtoType(file.Package)
	for _, elem := range definition.Elements {
		switch e := elem.(type) {
		case *proto.Message:
			if e.IsExtend {
				// A top-level extend block declares fields on a
				// message owned elsewhere; it introduces no type
				// of its own.
				continue
			}
			file.Types = append(file.Types, buildMessage(scope, e))
		case *proto.Enum:
			file.Types = append(file.Types, buildEnum(scope, e))
		case *proto.Service:
			file.Services = append(file.Services, buildService(scope, e))
		}
	}
	return file, nil
}

// buildMessage maps a message declaration. A message with nested types but
// no fields, extensions, or options of its own becomes an Enclosing
// namespace holder.
func buildMessage(scope protomodel.ProtoType, m *proto.Message) protomodel.Type {
	name := scope.Join(m.Name)

	var (
		fields     []protomodel.Field
		extensions []protomodel.Field
		options    []protomodel.Option
		nested     []protomodel.Type
	)

	for _, elem := range m.Elements {
		switch e := elem.(type) {
		case *proto.NormalField:
			fields = append(fields, protomodel.Field{
				Name:     e.Name,
				TypeName: e.Type,
				Tag:      e.Sequence,
				Repeated: e.Repeated,
				Optional: e.Optional,
			})
		case *proto.MapField:
			fields = append(fields, protomodel.Field{
				Name:     e.Name,
				TypeName: e.Type,
				Tag:      e.Sequence,
				Repeated: true,
			})
		case *proto.Oneof:
			for _, oe := range e.Elements {
				f, ok := oe.(*proto.OneOfField)
				if !ok {
					continue
				}
				fields = append(fields, protomodel.Field{
					Name:     f.Name,
					TypeName: f.Type,
					Tag:      f.Sequence,
				})
			}
		case *proto.Message:
			if e.IsExtend {
				for _, ee := range e.Elements {
					f, ok := ee.(*proto.NormalField)
					if !ok {
						continue
					}
					extensions = append(extensions, protomodel.Field{
						Name:     f.Name,
						TypeName: f.Type,
						Tag:      f.Sequence,
						Repeated: f.Repeated,
						Extendee: e.Name,
					})
				}
				continue
			}
			nested = append(nested, buildMessage(name, e))
		case *proto.Enum:
			nested = append(nested, buildEnum(name, e))
		case *proto.Option:
			options = append(options, buildOption(e))
		}
	}

	if len(fields) == 0 && len(extensions) == 0 && len(options) == 0 && len(nested) > 0 {
		return &protomodel.Enclosing{Name: name, Nested: nested}
	}
	return &protomodel.Message{
		Name:       name,
		Fields:     fields,
		Extensions: extensions,
		Options:    options,
		Nested:     nested,
	}
}

func buildEnum(scope protomodel.ProtoType, e *proto.Enum) protomodel.Type {
	enum := &protomodel.Enum{Name: scope.Join(e.Name)}
	for _, elem := range e.Elements {
		switch f := elem.(type) {
		case *proto.EnumField:
			enum.Constants = append(enum.Constants, protomodel.EnumConstant{
				Name:  f.Name,
				Value: f.Integer,
			})
		case *proto.Option:
			enum.Options = append(enum.Options, buildOption(f))
		}
	}
	return enum
}

func buildService(scope protomodel.ProtoType, s *proto.Service) *protomodel.Service {
	svc := &protomodel.Service{Name: scope.Join(s.Name)}
	for _, elem := range s.Elements {
		switch e := elem.(type) {
		case *proto.RPC:
			svc.Methods = append(svc.Methods, protomodel.Method{
				Name:            e.Name,
				RequestType:     e.RequestType,
				ResponseType:    e.ReturnsType,
				ClientStreaming: e.StreamsRequest,
				ServerStreaming: e.StreamsReturns,
			})
		case *proto.Option:
			svc.Options = append(svc.Options, buildOption(e))
		}
	}
	return svc
}

func buildOption(o *proto.Option) protomodel.Option {
	return protomodel.Option{
		Name:  o.Name,
		Value: o.Constant.SourceRepresentation(),
	}
}
