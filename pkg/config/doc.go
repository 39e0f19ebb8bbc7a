/*
Package config manages configuration parsing and validation for copytree.

	            +-------------+
	            |   Config    |
	            |   (Jobs)    |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +----+----+
	|   YAML    | |  JSON   | |   HCL   |
	|  Parser   | | Parser  | | Parser  |
	+-----------+ +---------+ +---------+

🎯 Purpose:
- Manages configuration loading and parsing
- Validates job definitions before any tree is copied
- Provides type-safe access to copy jobs and link policies
- Supports multiple config formats

🔄 Flow:
1. Reads configuration from file
2. Parses format-specific syntax
3. Applies defaults (VCS mode, git binary, job names)
4. Validates configuration values
5. Provides validated config to other packages

⚡ Key Responsibilities:
- Configuration parsing
- Schema validation
- Default value management
- Format abstraction

🤝 Interfaces:
- Parser: Format-specific parsing
- Config: Type-safe config access

📝 Design Philosophy:
The config package is the source of truth for all job configuration. It:
- Provides a clean interface for config access
- Ensures type safety and validation
- Abstracts away format-specific details
- Makes configuration errors clear and actionable

🔍 Example:

	cfg, err := config.Load(ctx, ".copytree.yaml")
	if err != nil {
		return err
	}
	for _, job := range cfg.Jobs {
		fmt.Println(job.String())
	}
*/
package config
