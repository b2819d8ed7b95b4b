package config

import (
	"fmt"
	"slices"
)

// WorkspaceConfig holds the settings of one Notion workspace.
type WorkspaceConfig struct {
	// TokenEnv names the environment variable that holds the workspace's
	// integration token. Empty means DefaultTokenEnv.
	TokenEnv string `yaml:"token_env,omitempty"`

	// PagePatterns are extra exclusion regexes for this workspace.
	PagePatterns []string `yaml:"page_patterns,omitempty"`
}

// Exclusions lists the regexes that drop pages before they are crawled. A
// page is dropped when any pattern matches its title or its URL.
type Exclusions struct {
	PagePatterns []string `yaml:"page_patterns,omitempty"`
}

// File represents the structure of the .navi configuration file.
type File struct {
	// Exclusions apply to every workspace.
	Exclusions Exclusions `yaml:"exclusions,omitempty"`

	// Defaults apply to every workspace unless overridden.
	Defaults WorkspaceConfig `yaml:"defaults,omitempty"`

	// Workspaces maps workspace names to their settings.
	Workspaces map[string]WorkspaceConfig `yaml:"workspaces,omitempty"`
}

// GetWorkspaceConfig returns the configuration of a workspace merged with
// the defaults. Page patterns accumulate; the token variable is replaced.
func (cf *File) GetWorkspaceConfig(name string) WorkspaceConfig {
	if cf == nil {
		return WorkspaceConfig{}
	}

	result := WorkspaceConfig{
		TokenEnv:     cf.Defaults.TokenEnv,
		PagePatterns: slices.Clone(cf.Defaults.PagePatterns),
	}

	if ws, ok := cf.Workspaces[name]; ok {
		if ws.TokenEnv != "" {
			result.TokenEnv = ws.TokenEnv
		}
		result.PagePatterns = append(result.PagePatterns, ws.PagePatterns...)
	}

	return result
}

// PagePatterns returns every exclusion pattern that applies to a workspace.
func (cf *File) PagePatterns(name string) []string {
	if cf == nil {
		return nil
	}
	patterns := slices.Clone(cf.Exclusions.PagePatterns)
	return append(patterns, cf.GetWorkspaceConfig(name).PagePatterns...)
}

// Workspace is a workspace ready to be crawled.
type Workspace struct {
	Name         string
	Token        string
	PagePatterns []string
}

// ResolveWorkspaces reads the token of every configured workspace with
// getenv. It fails with ErrNoToken for the first workspace without one.
func (c *Config) ResolveWorkspaces(getenv func(string) string) ([]Workspace, error) {
	names := c.WorkspaceNames()
	workspaces := make([]Workspace, 0, len(names))

	for _, name := range names {
		wc := c.File.GetWorkspaceConfig(name)

		env := wc.TokenEnv
		if env == "" {
			env = DefaultTokenEnv
		}

		token := getenv(env)
		if token == "" {
			return nil, fmt.Errorf("%w (workspace %q reads %s)", ErrNoToken, name, env)
		}

		workspaces = append(workspaces, Workspace{
			Name:         name,
			Token:        token,
			PagePatterns: c.File.PagePatterns(name),
		})
	}

	return workspaces, nil
}
