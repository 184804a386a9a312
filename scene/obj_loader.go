package scene

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"tilegl/core"
)

// objFace is an already-triangulated face (three vertex references).
type objFace struct {
	vIdx, vtIdx, vnIdx [3]int // 0-based position / UV / normal indices (-1 = absent)
}

type objVertex struct{ v, vt, vn int }

// LoadOBJ parses a Wavefront .obj file and returns one Mesh per object/group.
// A companion .mtl file is loaded automatically if referenced via "mtllib".
func LoadOBJ(path string, opts LoadOptions) ([]*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	log := opts.logger()

	var positions []mgl32.Vec3
	var normals []mgl32.Vec3
	var uvs []mgl32.Vec2

	materials := map[string]*Material{}
	textures := map[string]*Texture{}

	type objObject struct {
		name    string
		matName string
		faces   []objFace
	}

	var objects []objObject
	cur := &objObject{name: "default"}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			positions = append(positions, parseVec3(fields[1:4]))

		case "vn":
			if len(fields) < 4 {
				continue
			}
			normals = append(normals, parseVec3(fields[1:4]))

		case "vt":
			if len(fields) < 3 {
				continue
			}
			u, _ := strconv.ParseFloat(fields[1], 32)
			v, _ := strconv.ParseFloat(fields[2], 32)
			uvs = append(uvs, mgl32.Vec2{float32(u), float32(v)})

		case "o", "g":
			if len(cur.faces) > 0 {
				objects = append(objects, *cur)
			}
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			cur = &objObject{name: name, matName: cur.matName}

		case "usemtl":
			if len(fields) > 1 {
				// A material switch inside one object starts a new mesh.
				if len(cur.faces) > 0 {
					objects = append(objects, *cur)
					cur = &objObject{name: cur.name}
				}
				cur.matName = fields[1]
			}

		case "mtllib":
			if len(fields) > 1 {
				mtlPath := filepath.Join(dir, fields[1])
				loaded, err := loadMTL(mtlPath, dir, opts, textures)
				if err != nil {
					log.Warn("obj: skipping material library", "path", mtlPath, "err", err)
					continue
				}
				for k, v := range loaded {
					materials[k] = v
				}
			}

		case "f":
			if len(fields) < 4 {
				continue
			}
			var fverts []objVertex
			for _, tok := range fields[1:] {
				fverts = append(fverts, parseFaceVertex(tok, len(positions), len(uvs), len(normals)))
			}
			// Fan triangulation: 0-1-2, 0-2-3, 0-3-4, ...
			for i := 1; i+1 < len(fverts); i++ {
				f0, f1, f2 := fverts[0], fverts[i], fverts[i+1]
				cur.faces = append(cur.faces, objFace{
					vIdx:  [3]int{f0.v, f1.v, f2.v},
					vtIdx: [3]int{f0.vt, f1.vt, f2.vt},
					vnIdx: [3]int{f0.vn, f1.vn, f2.vn},
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}

	if len(cur.faces) > 0 {
		objects = append(objects, *cur)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("no geometry found in %q", path)
	}

	meshes := make([]*Mesh, 0, len(objects))
	for _, obj := range objects {
		mesh := buildMeshFromOBJ(obj.name, obj.faces, positions, normals, uvs)
		if mat, ok := materials[obj.matName]; ok {
			mesh.Material = mat
		} else {
			if obj.matName != "" {
				log.Warn("obj: unknown material", "material", obj.matName, "object", obj.name)
			}
			mesh.Material = DefaultMaterial()
		}
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

func parseVec3(fields []string) mgl32.Vec3 {
	x, _ := strconv.ParseFloat(fields[0], 32)
	y, _ := strconv.ParseFloat(fields[1], 32)
	z, _ := strconv.ParseFloat(fields[2], 32)
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn", "v/vt/vn".
// Returns 0-based indices (-1 if absent). OBJ is 1-based; negative indices
// count back from the end of the pools read so far.
func parseFaceVertex(tok string, nv, nvt, nvn int) objVertex {
	parseIdx := func(s string, n int) int {
		if s == "" {
			return -1
		}
		i, err := strconv.Atoi(s)
		if err != nil || i == 0 {
			return -1
		}
		if i > 0 {
			return i - 1
		}
		return n + i
	}
	parts := strings.Split(tok, "/")
	res := objVertex{v: -1, vt: -1, vn: -1}
	if len(parts) > 0 {
		res.v = parseIdx(parts[0], nv)
	}
	if len(parts) > 1 {
		res.vt = parseIdx(parts[1], nvt)
	}
	if len(parts) > 2 {
		res.vn = parseIdx(parts[2], nvn)
	}
	return res
}

// buildMeshFromOBJ converts parsed face data into a deduplicated Mesh.
func buildMeshFromOBJ(
	name string,
	faces []objFace,
	positions []mgl32.Vec3,
	normals []mgl32.Vec3,
	uvs []mgl32.Vec2,
) *Mesh {
	vertMap := map[objVertex]uint32{}
	var vertices []core.Vertex
	var indices []uint32

	safePos := func(i int) mgl32.Vec3 {
		if i >= 0 && i < len(positions) {
			return positions[i]
		}
		return mgl32.Vec3{}
	}
	safeNorm := func(i int) mgl32.Vec3 {
		if i >= 0 && i < len(normals) {
			return normals[i]
		}
		return mgl32.Vec3{0, 1, 0}
	}
	safeUV := func(i int) mgl32.Vec2 {
		if i >= 0 && i < len(uvs) {
			return uvs[i]
		}
		return mgl32.Vec2{}
	}

	for _, face := range faces {
		for c := 0; c < 3; c++ {
			k := objVertex{face.vIdx[c], face.vtIdx[c], face.vnIdx[c]}
			idx, ok := vertMap[k]
			if !ok {
				idx = uint32(len(vertices))
				vertices = append(vertices, core.Vertex{
					Position: safePos(k.v),
					Normal:   safeNorm(k.vn),
					UV:       safeUV(k.vt),
				})
				vertMap[k] = idx
			}
			indices = append(indices, idx)
		}
	}

	if len(normals) == 0 {
		generateSmoothNormals(vertices, indices)
	}

	return CreateMeshFromData(name, vertices, indices)
}

// generateSmoothNormals computes area-weighted vertex normals.
func generateSmoothNormals(vertices []core.Vertex, indices []uint32) {
	accum := make([]mgl32.Vec3, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0 := vertices[i0].Position
		v1 := vertices[i1].Position
		v2 := vertices[i2].Position
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range vertices {
		if accum[i].Len() > 0 {
			vertices[i].Normal = accum[i].Normalize()
		}
	}
}

// ── MTL loader ───────────────────────────────────────────────────────────────

func loadMTL(path, dir string, opts LoadOptions, cache map[string]*Texture) (map[string]*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mats := map[string]*Material{}
	var cur *Material

	texture := func(name string) *Texture {
		texPath := filepath.Join(dir, name)
		if tex, ok := cache[texPath]; ok {
			return tex
		}
		tex, err := LoadTexture(texPath, opts.FlipTextures)
		if err != nil {
			opts.logger().Warn("mtl: texture not loaded", "path", texPath, "err", err)
			return nil
		}
		cache[texPath] = tex
		return tex
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				m := DefaultMaterial()
				m.Name = fields[1]
				mats[fields[1]] = m
				cur = m
			}
		case "Kd":
			if cur != nil && len(fields) >= 4 {
				c := parseVec3(fields[1:4])
				cur.Diffuse = core.Color{R: c[0], G: c[1], B: c[2], A: 1}
			}
		case "Ks":
			if cur != nil && len(fields) >= 4 {
				c := parseVec3(fields[1:4])
				cur.Specular = core.Color{R: c[0], G: c[1], B: c[2], A: 1}
			}
		case "Ns":
			if cur != nil && len(fields) >= 2 {
				ns, _ := strconv.ParseFloat(fields[1], 32)
				cur.Shininess = float32(math.Max(1, ns))
			}
		case "map_Kd":
			if cur != nil && len(fields) >= 2 {
				cur.DiffuseTexture = texture(fields[len(fields)-1])
			}
		case "map_Ks":
			if cur != nil && len(fields) >= 2 {
				cur.SpecularTexture = texture(fields[len(fields)-1])
			}
		}
	}

	return mats, scanner.Err()
}
