package export

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes every part as an OBJ object referencing mtlName for its
// materials. Indices are 1-based and global across objects.
func WriteOBJ(w io.Writer, b *Baked, mtlName string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d objects, %d triangles\n", len(b.Parts), b.TriangleCount())
	if mtlName != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtlName)
	}

	offset := 1
	for _, p := range b.Parts {
		fmt.Fprintf(bw, "o %s\n", p.Path)
		for _, v := range p.Mesh.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v.Position.X, v.Position.Y, v.Position.Z)
		}
		for _, v := range p.Mesh.Vertices {
			fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal.X, v.Normal.Y, v.Normal.Z)
		}
		if name := b.MaterialName(p.Material); name != "" {
			fmt.Fprintf(bw, "usemtl %s\n", name)
		}
		for i := 0; i < p.Mesh.TriangleCount(); i++ {
			tri := p.Mesh.Triangle(i)
			a, c, d := int(tri[0])+offset, int(tri[1])+offset, int(tri[2])+offset
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, c, c, d, d)
		}
		offset += p.Mesh.VertexCount()
	}
	return bw.Flush()
}

// WriteMTL writes one Standard-style diffuse material per baked material.
func WriteMTL(w io.Writer, b *Baked) error {
	bw := bufio.NewWriter(w)
	for _, m := range b.Materials {
		fmt.Fprintf(bw, "newmtl %s\n", b.MaterialName(m))
		fmt.Fprintf(bw, "Kd %g %g %g\n", m.Color.R, m.Color.G, m.Color.B)
		fmt.Fprintf(bw, "Ka 0 0 0\nKs 0.1 0.1 0.1\nNs 16\nillum 2\n\n")
	}
	return bw.Flush()
}
