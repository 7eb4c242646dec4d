// Package domain holds the repository descriptor model and shared SCM typing
package domain

import "strings"

// DefaultBranch is used when a descriptor is saved with a blank branch
const DefaultBranch = "master"

// RepoDescriptor describes one source repository known to the system
// Name is the unique identity; everything else is crawl configuration
type RepoDescriptor struct {
	Name     string `json:"name"`
	SCM      string `json:"scm"`
	URL      string `json:"url"`
	Username string `json:"username,omitempty"`
	Password string `json:"-"`
	Source   string `json:"source,omitempty"`
	Branch   string `json:"branch"`
}

// SCMKind is the closed set of source control types routing understands
type SCMKind uint8

const (
	// SCMUnsupported is any type the crawler cannot handle
	SCMUnsupported SCMKind = iota
	// SCMGit is a git repository
	SCMGit
	// SCMSvn is a subversion repository
	SCMSvn
	// SCMFile is a plain directory tree on local disk
	SCMFile
)

// String returns the lowercase wire form of the kind
func (k SCMKind) String() string {
	switch k {
	case SCMGit:
		return "git"
	case SCMSvn:
		return "svn"
	case SCMFile:
		return "file"
	default:
		return "unsupported"
	}
}

// ParseSCM maps a raw scm string onto the closed kind set, case insensitively
// anything unknown is SCMUnsupported; routing skips those silently
func ParseSCM(s string) SCMKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "git":
		return SCMGit
	case "svn":
		return SCMSvn
	case "file":
		return SCMFile
	default:
		return SCMUnsupported
	}
}

// NormalizeSCM applies the relaxed admin-form policy: recognized types pass
// through lowercased, anything else becomes git
func NormalizeSCM(s string) string {
	if k := ParseSCM(s); k != SCMUnsupported {
		return k.String()
	}
	return SCMGit.String()
}

// Normalize fills descriptor defaults in place and returns it
// blank branch becomes DefaultBranch, scm goes through NormalizeSCM
func (d RepoDescriptor) Normalize() RepoDescriptor {
	d.Name = strings.TrimSpace(d.Name)
	d.SCM = NormalizeSCM(d.SCM)
	if strings.TrimSpace(d.Branch) == "" {
		d.Branch = DefaultBranch
	}
	return d
}
