package domain

import "testing"

func TestParseSCM_ClosedSet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want SCMKind
	}{
		{"git", SCMGit},
		{"GIT", SCMGit},
		{"  svn ", SCMSvn},
		{"Svn", SCMSvn},
		{"file", SCMFile},
		{"cvs", SCMUnsupported},
		{"", SCMUnsupported},
		{"gitt", SCMUnsupported},
	}
	for _, c := range cases {
		if got := ParseSCM(c.in); got != c.want {
			t.Errorf("ParseSCM(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeSCM_UnknownBecomesGit(t *testing.T) {
	t.Parallel()

	if got := NormalizeSCM("perforce"); got != "git" {
		t.Fatalf("NormalizeSCM(perforce) = %q, want git", got)
	}
	if got := NormalizeSCM("SVN"); got != "svn" {
		t.Fatalf("NormalizeSCM(SVN) = %q, want svn", got)
	}
}

func TestNormalize_DefaultsBranch(t *testing.T) {
	t.Parallel()

	d := RepoDescriptor{Name: " myrepo ", SCM: "hg", URL: "http://x", Branch: "  "}
	n := d.Normalize()
	if n.Name != "myrepo" {
		t.Errorf("Name = %q, want myrepo", n.Name)
	}
	if n.SCM != "git" {
		t.Errorf("SCM = %q, want git", n.SCM)
	}
	if n.Branch != DefaultBranch {
		t.Errorf("Branch = %q, want %q", n.Branch, DefaultBranch)
	}

	kept := RepoDescriptor{Name: "a", SCM: "svn", Branch: "trunk"}.Normalize()
	if kept.Branch != "trunk" {
		t.Errorf("explicit branch overwritten: %q", kept.Branch)
	}
}
