package export

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/creatura/internal/logger"
	"github.com/Faultbox/creatura/internal/scene"
)

// OBJHost is a scene.Host that writes <Base>.obj and <Base>.mtl into Dir.
type OBJHost struct {
	Dir  string
	Base string
}

var _ scene.Host = (*OBJHost)(nil)

// Instantiate bakes root and writes both files.
func (h *OBJHost) Instantiate(root *scene.Node) error {
	if root == nil {
		return fmt.Errorf("export: nil root")
	}
	if err := os.MkdirAll(h.Dir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	baked := Bake(root)

	mtlName := h.Base + ".mtl"
	if err := writeFile(filepath.Join(h.Dir, mtlName), func(f *os.File) error {
		return WriteMTL(f, baked)
	}); err != nil {
		return err
	}
	objPath := filepath.Join(h.Dir, h.Base+".obj")
	if err := writeFile(objPath, func(f *os.File) error {
		return WriteOBJ(f, baked, mtlName)
	}); err != nil {
		return err
	}

	logger.Info("wrote mesh",
		zap.String("path", objPath),
		zap.Int("objects", len(baked.Parts)),
		zap.Int("triangles", baked.TriangleCount()),
		zap.Int("materials", len(baked.Materials)))
	return nil
}

// WriteManifestFile writes m as YAML to path.
func WriteManifestFile(path string, m *Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	return writeFile(path, func(f *os.File) error {
		return WriteManifest(f, m)
	})
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
