package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	IcosahedronRadius = 1.5
	IcosahedronDetail = 1
	IcosahedronColor  = 0xff007f
)

// Material describes how a surface reacts to light.
type Material struct {
	Color     Color
	Emissive  Color
	Roughness float64
	Metalness float64
	Wireframe bool
}

// Icosahedron is a subdivided icosphere drawn as a wireframe.
type Icosahedron struct {
	Object3D
	Radius   float32
	Detail   int
	Material Material

	// Vertices are unique, on the sphere of Radius.
	Vertices []mgl32.Vec3
	// Faces index Vertices, counter-clockwise seen from outside.
	Faces [][3]int
	// Edges are the unique undirected face edges.
	Edges [][2]int
}

var (
	icoT = float32((1 + math.Sqrt(5)) / 2)

	icoBase = []mgl32.Vec3{
		{-1, icoT, 0}, {1, icoT, 0}, {-1, -icoT, 0}, {1, -icoT, 0},
		{0, -1, icoT}, {0, 1, icoT}, {0, -1, -icoT}, {0, 1, -icoT},
		{icoT, 0, -1}, {icoT, 0, 1}, {-icoT, 0, -1}, {-icoT, 0, 1},
	}

	icoFaces = [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// NewIcosahedron builds the geometry with each base edge split into
// detail+1 segments and every vertex pushed onto the sphere.
func NewIcosahedron(radius float32, detail int) *Icosahedron {
	if detail < 0 {
		detail = 0
	}
	ico := &Icosahedron{
		Object3D: NewObject3D(),
		Radius:   radius,
		Detail:   detail,
		Material: Material{
			Color:     Hex(IcosahedronColor),
			Roughness: 0.5,
			Metalness: 0.5,
			Wireframe: true,
		},
	}

	b := geometryBuilder{index: make(map[[3]int32]int), edges: make(map[[2]int]struct{})}
	cols := detail + 1
	for _, f := range icoFaces {
		a, bb, c := icoBase[f[0]], icoBase[f[1]], icoBase[f[2]]

		grid := make([][]mgl32.Vec3, cols+1)
		for i := 0; i <= cols; i++ {
			aj := lerpVec(a, c, float32(i)/float32(cols))
			bj := lerpVec(bb, c, float32(i)/float32(cols))
			rows := cols - i
			grid[i] = make([]mgl32.Vec3, rows+1)
			for j := 0; j <= rows; j++ {
				if j == 0 && i == cols {
					grid[i][j] = aj
				} else {
					grid[i][j] = lerpVec(aj, bj, float32(j)/float32(rows))
				}
			}
		}

		for i := 0; i < cols; i++ {
			for j := 0; j < 2*(cols-i)-1; j++ {
				k := j / 2
				if j%2 == 0 {
					b.triangle(grid[i][k+1], grid[i+1][k], grid[i][k], radius)
				} else {
					b.triangle(grid[i][k+1], grid[i+1][k+1], grid[i+1][k], radius)
				}
			}
		}
	}

	ico.Vertices = b.vertices
	ico.Faces = b.faces
	ico.Edges = b.edgeList
	return ico
}

// VertexNormal returns the outward unit normal at vertex i.
func (ico *Icosahedron) VertexNormal(i int) mgl32.Vec3 {
	return ico.Vertices[i].Normalize()
}

type geometryBuilder struct {
	vertices []mgl32.Vec3
	index    map[[3]int32]int
	faces    [][3]int
	edges    map[[2]int]struct{}
	edgeList [][2]int
}

func (b *geometryBuilder) vertex(v mgl32.Vec3, radius float32) int {
	v = v.Normalize().Mul(radius)
	key := [3]int32{quantize(v.X()), quantize(v.Y()), quantize(v.Z())}
	if i, ok := b.index[key]; ok {
		return i
	}
	b.vertices = append(b.vertices, v)
	b.index[key] = len(b.vertices) - 1
	return len(b.vertices) - 1
}

func (b *geometryBuilder) triangle(v0, v1, v2 mgl32.Vec3, radius float32) {
	f := [3]int{b.vertex(v0, radius), b.vertex(v1, radius), b.vertex(v2, radius)}
	b.faces = append(b.faces, f)
	for e := 0; e < 3; e++ {
		b.edge(f[e], f[(e+1)%3])
	}
}

func (b *geometryBuilder) edge(i, j int) {
	if i > j {
		i, j = j, i
	}
	key := [2]int{i, j}
	if _, ok := b.edges[key]; ok {
		return
	}
	b.edges[key] = struct{}{}
	b.edgeList = append(b.edgeList, key)
}

func quantize(f float32) int32 {
	return int32(math.Round(float64(f) * 1e4))
}

func lerpVec(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
