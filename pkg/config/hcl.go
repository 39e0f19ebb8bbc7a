// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Evaluation context: expressions may call env("NAME")
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: map[string]function.Function{
			"env": function.New(&function.Spec{
				Params: []function.Parameter{
					{Name: "name", Type: cty.String},
				},
				Type: function.StaticReturnType(cty.String),
				Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
					return cty.StringVal(os.Getenv(args[0].AsString())), nil
				},
			}),
		},
	}

	// Define HCL schema
	type hclPolicy struct {
		NormalizeLinks      *bool `hcl:"normalize_links,optional"`
		KeepInsideSymlinks  *bool `hcl:"keep_inside_symlinks,optional"`
		KeepOutsideSymlinks *bool `hcl:"keep_outside_symlinks,optional"`
	}
	type hclJob struct {
		Name        string     `hcl:"name,label"`
		Source      string     `hcl:"source"`
		Destination string     `hcl:"destination"`
		VCS         *string    `hcl:"vcs,optional"`
		GitPath     *string    `hcl:"git_path,optional"`
		ExcludeRoot []string   `hcl:"exclude_root,optional"`
		Ignore      []string   `hcl:"ignore,optional"`
		Policy      *hclPolicy `hcl:"policy,block"`
	}
	type hclConfig struct {
		Parallel *bool    `hcl:"parallel,optional"`
		Jobs     []hclJob `hcl:"job,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{}
	if hclCfg.Parallel != nil {
		cfg.Parallel = *hclCfg.Parallel
	}
	for _, j := range hclCfg.Jobs {
		job := Job{
			Name:        j.Name,
			Source:      j.Source,
			Destination: j.Destination,
			ExcludeRoot: j.ExcludeRoot,
			Ignore:      j.Ignore,
		}
		if j.VCS != nil {
			job.VCS = VCSMode(*j.VCS)
		}
		if j.GitPath != nil {
			job.GitPath = *j.GitPath
		}
		if j.Policy != nil {
			job.Policy = PolicySpec{
				NormalizeLinks:      j.Policy.NormalizeLinks,
				KeepInsideSymlinks:  j.Policy.KeepInsideSymlinks,
				KeepOutsideSymlinks: j.Policy.KeepOutsideSymlinks,
			}
		}
		cfg.Jobs = append(cfg.Jobs, job)
	}

	return cfg, nil
}
