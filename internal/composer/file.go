package composer

import (
	"fmt"
	"os"

	"github.com/jpallister/autochangelog/internal/scratch"
)

// prependFile rewrites path as prefix followed by its current content,
// preserving the file mode. A crash leaves either the old or the new file,
// never a truncated one.
func prependFile(path, prefix string) error {
	orig, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	return scratch.WriteFile(path, append([]byte(prefix), orig...), info.Mode().Perm())
}
