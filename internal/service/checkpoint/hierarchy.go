package checkpoint

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/pitkeeper/internal/domain"
)

// SortFoldersByHierarchy orders folders breadth-first so that every folder
// comes after its parent when the parent is in the set. Folders whose parent
// is missing from the set are treated as roots. Input order is kept within a
// level. Folders unreachable from any root (a parent cycle) are appended last.
func SortFoldersByHierarchy(folders []domain.SecretFolder) []domain.SecretFolder {
	present := make(map[uuid.UUID]struct{}, len(folders))
	for _, f := range folders {
		present[f.ID] = struct{}{}
	}

	children := make(map[uuid.UUID][]domain.SecretFolder)
	var level []domain.SecretFolder
	for _, f := range folders {
		if f.ParentID == nil {
			level = append(level, f)
			continue
		}
		if _, ok := present[*f.ParentID]; !ok {
			level = append(level, f)
			continue
		}
		children[*f.ParentID] = append(children[*f.ParentID], f)
	}

	result := make([]domain.SecretFolder, 0, len(folders))
	visited := make(map[uuid.UUID]struct{}, len(folders))

	for len(level) > 0 {
		var next []domain.SecretFolder
		for _, f := range level {
			if _, seen := visited[f.ID]; seen {
				continue
			}
			visited[f.ID] = struct{}{}
			result = append(result, f)
			next = append(next, children[f.ID]...)
		}
		level = next
	}

	if len(result) < len(folders) {
		for _, f := range folders {
			if _, seen := visited[f.ID]; !seen {
				visited[f.ID] = struct{}{}
				result = append(result, f)
			}
		}
	}

	return result
}
