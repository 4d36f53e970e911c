// Package git tests the CLI and go-git backends against a real repository.
// Related: internal/git/cli.go, internal/git/gogit.go
// Tags: git, vcs, staged, config
package git

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpallister/autochangelog/internal/testutil"
)

// initRepo creates a repository with one commit containing README.md and an
// empty ChangeLog.
func initRepo(t *testing.T) *testutil.GitRepo {
	t.Helper()

	repo := testutil.NewGitRepo(t)
	repo.WriteFile("README.md", "# Test\n")
	repo.WriteFile("ChangeLog", "")
	repo.Commit("Initial commit")
	return repo
}

func backends(t *testing.T, repo *testutil.GitRepo) map[string]VCS {
	t.Helper()

	gg, err := OpenGoGit(repo.Dir)
	require.NoError(t, err)
	return map[string]VCS{
		BackendCLI:   NewCLI(repo.Dir),
		BackendGoGit: gg,
	}
}

func TestStagedFiles(t *testing.T) {
	repo := initRepo(t)
	repo.WriteFile("b.c", "int b;\n")
	repo.WriteFile("a.c", "int a;\n")
	repo.WriteFile("sub/with space.txt", "x\n")
	repo.WriteFile("README.md", "# Changed\n")
	repo.WriteFile("untracked.txt", "x\n")
	repo.Stage("a.c", "b.c", "sub/with space.txt", "README.md")

	want := []string{"README.md", "a.c", "b.c", "sub/with space.txt"}
	for name, vcs := range backends(t, repo) {
		t.Run(name, func(t *testing.T) {
			files, err := vcs.StagedFiles(context.Background())
			require.NoError(t, err)
			assert.Equal(t, want, files)
		})
	}
}

func TestStagedFiles_Empty(t *testing.T) {
	repo := initRepo(t)

	for name, vcs := range backends(t, repo) {
		t.Run(name, func(t *testing.T) {
			files, err := vcs.StagedFiles(context.Background())
			require.NoError(t, err)
			assert.Empty(t, files)
		})
	}
}

func TestIdentity(t *testing.T) {
	repo := initRepo(t)

	for name, vcs := range backends(t, repo) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			userName, err := vcs.UserName(ctx)
			require.NoError(t, err)
			assert.Equal(t, "Test", userName)

			email, err := vcs.UserEmail(ctx)
			require.NoError(t, err)
			assert.Equal(t, "test@test.com", email)
		})
	}
}

func TestStage(t *testing.T) {
	for _, backend := range []string{BackendCLI, BackendGoGit} {
		t.Run(backend, func(t *testing.T) {
			repo := initRepo(t)
			repo.WriteFile("ChangeLog", "2026-10-19  Test  <test@test.com>\n")

			vcs, err := New(backend, repo.Dir)
			require.NoError(t, err)
			require.NoError(t, vcs.Stage(context.Background(), "ChangeLog"))

			assert.Equal(t, "ChangeLog\n", repo.StagedFiles())
		})
	}
}

func TestHooksDir(t *testing.T) {
	repo := initRepo(t)

	for name, vcs := range backends(t, repo) {
		t.Run(name, func(t *testing.T) {
			hooks, err := vcs.HooksDir(context.Background())
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(hooks))
			assert.Equal(t, "hooks", filepath.Base(hooks))
			assert.Equal(t, ".git", filepath.Base(filepath.Dir(hooks)))
		})
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	t.Parallel()

	_, err := New("svn", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown git backend")
}

func TestOpenGoGit_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := OpenGoGit(t.TempDir())
	require.Error(t, err)
}

func TestParseNulList(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  []string
	}{
		"empty":           {input: "", want: nil},
		"single":          {input: "a.c\x00", want: []string{"a.c"}},
		"spaces kept":     {input: "a b.c\x00d.c\x00", want: []string{"a b.c", "d.c"}},
		"no trailing nul": {input: "a.c\x00b.c", want: []string{"a.c", "b.c"}},
	}

	for name, tt := range tests {

		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseNulList([]byte(tt.input)))
		})
	}
}
