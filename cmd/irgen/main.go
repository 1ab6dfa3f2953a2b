// Command irgen is the CLI front end for the microstatement generator:
// lower a module's functions and print the rendered IR, dump the
// built-in primitive catalog, or serve the core over gRPC.
package main

import (
	"fmt"
	"net"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/config"
	"github.com/alantech/irgen/internal/diaglog"
	"github.com/alantech/irgen/internal/factstore"
	"github.com/alantech/irgen/internal/pipeline"
	"github.com/alantech/irgen/internal/primitives"
	"github.com/alantech/irgen/internal/rpc"
)

var (
	debugTrace bool
	configPath string
	envPath string
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use: "irgen",
		Short: "Microstatement IR generator",
		Version: "0.1.0",
	}
	root.PersistentFlags().BoolVar(&debugTrace, "debug-trace", false, "enable verbose dispatch/inlining trace output")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a compiler-options YAML file")
	root.PersistentFlags().StringVar(&envPath, "env", ".env", "path to a .env overrides file")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		config.IsDebugTrace = debugTrace
		if err := config.LoadDotEnv(envPath); err != nil {
			return err
		}
		if configPath != "" {
			if _, err := config.Load(configPath); err != nil {
				return err
			}
		}
		return nil
	}

	root.AddCommand(newLowerCommand())
	root.AddCommand(newDumpPrimitivesCommand())
	root.AddCommand(newServeCommand())
	return root
}

// newLowerCommand lowers every function of one or more modules — in this
// standalone CLI a module is represented, for lack of a wired front-end
// parser, by an empty-bodied placeholder function: the module is named by
// the argument and the function by the --function flag, so the command
// still exercises the full pipeline end to end.
//
// Independent modules are lowered concurrently via errgroup: one
// module's single-threaded lowering constraint doesn't extend to an
// unrelated batch passed on one CLI invocation.
func newLowerCommand() *cobra.Command {
	var functionName string
	var factStorePath string
	cmd := &cobra.Command{
		Use: "lower <module-name>...",
		Short: "Lower one or more modules' functions to microstatement IR and print the rendered dump",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if functionName == "" {
				functionName = "main"
			}
			var store *factstore.Store
			if factStorePath != "" {
				s, err := factstore.Open(factStorePath)
				if err != nil {
					return err
				}
				defer s.Close()
				store = s
			}

			results := make([]*pipeline.Context, len(args))
			var g errgroup.Group
			for i, moduleName := range args {
				i, moduleName := i, moduleName
				g.Go(func() error {
					functions := map[string][]ast.Node{functionName: {}}
					ctx := pipeline.NewContext(moduleName, functions)
					ctx.Store = store
					p := pipeline.New(pipeline.NewLoweringStage(), &pipeline.RenderStage{})
					results[i] = p.Run(ctx)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			var failed bool
			for i, ctx := range results {
				moduleName := args[i]
				if len(ctx.Errors) > 0 {
					diaglog.Report(os.Stderr, moduleName, ctx.Errors)
					failed = true
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), ctx.Rendered[functionName])
			}
			if failed {
				return fmt.Errorf("one or more modules failed to lower")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&functionName, "function", "main", "function within the module to lower")
	cmd.Flags().StringVar(&factStorePath, "fact-store", "", "path to a sqlite debug sink recording every emitted microstatement")
	return cmd
}

func newDumpPrimitivesCommand() *cobra.Command {
	return &cobra.Command{
		Use: "dump-primitives",
		Short: "List every registered primitive, sorted by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			all := primitives.All()
			sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
			for _, p := range all {
				argTypes := p.ArgTypes()
				argNames := make([]string, len(argTypes))
				for i, t := range argTypes {
					argNames[i] = t.TypeName()
				}
				ret := "void"
				if p.ReturnType() != nil {
					ret = p.ReturnType().TypeName()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s(%v): %s\n", p.Name(), argNames, ret)
			}
			return nil
		},
	}
}

func newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use: "serve",
		Short: "Serve the core as an IRService over gRPC",
		RunE: func(cmd *cobra.Command, args []string) error {
			lis, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			srv := grpc.NewServer()
			svc := rpc.NewService(map[string]map[string][]ast.Node{})
			rpc.RegisterServer(srv, svc)
			fmt.Fprintf(cmd.OutOrStdout(), "irgen IRService listening on %s\n", addr)
			return srv.Serve(lis)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9090", "listen address")
	return cmd
}
