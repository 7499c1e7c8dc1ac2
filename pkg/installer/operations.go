package installer

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/dotdeploy/pkg/config"
	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// BuildOperations turns classified source entries into the flat list
// of planned destination mutations.
//
// A plain entry yields one symlink at <target>/<basename>, linking the
// whole entry as a unit. A link-each directory yields a directory at
// the destination plus one symlink per child, namespaced under the
// directory's basename; the marker file itself is never linked.
func BuildOperations(fs types.FS, p paths.Paths, cfg *config.Config, entries []types.Entry) ([]types.Operation, error) {
	var ops []types.Operation

	for _, entry := range entries {
		switch entry.Kind {
		case types.KindSkipped:
			continue

		case types.KindPlain:
			ops = append(ops, types.Operation{
				Type:        types.OperationCreateSymlink,
				Source:      entry.Path,
				Target:      p.TargetPath(entry.Name),
				Description: fmt.Sprintf("link %s", entry.Name),
			})

		case types.KindLinkEach:
			ops = append(ops, types.Operation{
				Type:        types.OperationCreateDir,
				Target:      p.TargetPath(entry.Name),
				Description: fmt.Sprintf("ensure directory %s", entry.Name),
			})

			children, err := fs.ReadDir(entry.Path)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrScanSource,
					"failed to read link-each directory %s", entry.Path)
			}
			for _, child := range children {
				if child.Name() == cfg.LinkEachMarker {
					continue
				}
				rel := filepath.Join(entry.Name, child.Name())
				ops = append(ops, types.Operation{
					Type:        types.OperationCreateSymlink,
					Source:      filepath.Join(entry.Path, child.Name()),
					Target:      p.TargetPath(rel),
					Description: fmt.Sprintf("link %s", rel),
				})
			}

		default:
			return nil, errors.Newf(errors.ErrInternal, "unknown entry kind %q", entry.Kind)
		}
	}

	return ops, nil
}
