package scene

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo describes a scene that can be rendered
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to Open
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

// BuiltinScenes lists the scenes constructed in code
func BuiltinScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "random",
			Name:        "Random Spheres",
			Description: "Ground with a grid of small random spheres and three large ones",
			Type:        "builtin",
		},
		{
			ID:          "glass",
			Name:        "Glass Spheres",
			Description: "Random layout with every small sphere made of glass",
			Type:        "builtin",
		},
		{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Glass, diffuse and metal spheres on a large ground sphere",
			Type:        "builtin",
		},
	}
}

// ListSceneFiles scans dir for *.json scene files. Files that cannot be
// parsed are listed with fallback metadata taken from the file name.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		scenes = append(scenes, readSceneInfo(filePath))
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the files in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(BuiltinScenes(), files...), nil
}

// Open builds a scene by built-in ID or from a .json file path.
// random drives the placement of randomly generated scenes.
func Open(id string, random *rand.Rand) (*Scene, error) {
	switch id {
	case "random":
		return NewRandomScene(random)
	case "glass":
		return NewGlassSpheresScene(random)
	case "default":
		return NewDefaultScene()
	}
	if strings.EqualFold(filepath.Ext(id), ".json") {
		return LoadScene(id)
	}
	return nil, fmt.Errorf("%w: unknown scene %q", ErrInvalidScene, id)
}

func readSceneInfo(filePath string) SceneInfo {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     "json",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info
	}
	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info
	}
	if header.Name != "" {
		info.Name = header.Name
	}
	info.Description = header.Description
	return info
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
