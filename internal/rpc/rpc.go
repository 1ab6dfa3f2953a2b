// Package rpc exposes the core as a remote "lower this module" call: an
// IRService with one method, Lower(LowerRequest) returns (LowerResponse).
// The wire schema is a .proto string parsed at init via protoparse, and
// requests/responses are dynamic.Message values rather than generated
// stubs, so this package never needs a protoc step.
package rpc

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"

	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/lowering"
	"github.com/alantech/irgen/internal/pipeline"
)

// irgenProto is the wire schema for the IRService: a request names a
// module and a function already registered with the Service (function
// bodies are parsed trees held in-process and never sent over the wire);
// the response carries the rendered microstatement dump or error strings.
const irgenProto = `
syntax = "proto3";
package irgen;

message LowerRequest {
 string module_name = 1;
 string function_name = 2;
}

message LowerResponse {
 string rendered = 1;
 repeated string errors = 2;
}

service IRService {
 rpc Lower(LowerRequest) returns (LowerResponse);
}
`

var fileDescriptor *desc.FileDescriptor

func init() {
	accessor := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			"irgen.proto": irgenProto,
		}),
	}
	fds, err := accessor.ParseFiles("irgen.proto")
	if err != nil {
		panic(fmt.Sprintf("rpc: parsing embedded irgen.proto: %v", err))
	}
	fileDescriptor = fds[0]
}

// RequestMessageDescriptor and ResponseMessageDescriptor expose the
// dynamic message shapes for callers building requests by hand.
func RequestMessageDescriptor() *desc.MessageDescriptor {
	return fileDescriptor.FindMessage("irgen.LowerRequest")
}

func ResponseMessageDescriptor() *desc.MessageDescriptor {
	return fileDescriptor.FindMessage("irgen.LowerResponse")
}

// Service implements the IRService contract against an in-memory module
// registry: a set of named modules, each a set of named function bodies
// (already parsed — this package is a transport, not a parser).
type Service struct {
	generator *lowering.Generator
	modules map[string]map[string][]ast.Node
}

// NewService builds a Service with a fresh lowering.Generator.
func NewService(modules map[string]map[string][]ast.Node) *Service {
	return &Service{generator: lowering.New(), modules: modules}
}

// Lower looks up the named module/function, lowers it, and returns a
// dynamic.Message shaped like LowerResponse.
func (s *Service) Lower(ctx context.Context, req *dynamic.Message) (*dynamic.Message, error) {
	moduleName, _ := req.TryGetFieldByName("module_name")
	functionName, _ := req.TryGetFieldByName("function_name")

	mod, ok := s.modules[moduleName.(string)]
	if !ok {
		return s.errorResponse(fmt.Sprintf("unknown module %q", moduleName)), nil
	}
	stmts, ok := mod[functionName.(string)]
	if !ok {
		return s.errorResponse(fmt.Sprintf("unknown function %q in module %q", functionName, moduleName)), nil
	}

	pctx := pipeline.NewContext(moduleName.(string), map[string][]ast.Node{functionName.(string): stmts})
	p := pipeline.New(pipeline.NewLoweringStage(), &pipeline.RenderStage{})
	pctx = p.Run(pctx)

	resp := dynamic.NewMessage(ResponseMessageDescriptor())
	if len(pctx.Errors) > 0 {
		errStrs := make([]interface{}, len(pctx.Errors))
		for i, e := range pctx.Errors {
			errStrs[i] = e.Error()
		}
		resp.SetFieldByName("errors", errStrs)
		return resp, nil
	}
	resp.SetFieldByName("rendered", pctx.Rendered[functionName.(string)])
	return resp, nil
}

func (s *Service) errorResponse(msg string) *dynamic.Message {
	resp := dynamic.NewMessage(ResponseMessageDescriptor())
	resp.SetFieldByName("errors", []interface{}{msg})
	return resp
}

// RegisterServer wires Service.Lower as the IRService/Lower gRPC method
// handler onto an existing *grpc.Server, using a hand-built
// grpc.ServiceDesc since there is no generated stub for a schema parsed
// at runtime.
func RegisterServer(srv *grpc.Server, svc *Service) {
	desc := grpc.ServiceDesc{
		ServiceName: "irgen.IRService",
		HandlerType: (*interface{})(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Lower",
				Handler: func(_ interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
					req := dynamic.NewMessage(RequestMessageDescriptor())
					if err := dec(req); err != nil {
						return nil, err
					}
					return svc.Lower(ctx, req)
				},
			},
		},
		Streams: []grpc.StreamDesc{},
		Metadata: "irgen.proto",
	}
	srv.RegisterService(&desc, svc)
}
