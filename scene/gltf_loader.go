package scene

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"tilegl/core"
)

// LoadGLTF opens a .glb or .gltf file and returns its meshes with every node
// transform baked into the vertices. PBR metallic-roughness materials are
// approximated with Phong.
func LoadGLTF(path string, opts LoadOptions) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	l := &gltfLoader{
		doc:  doc,
		dir:  filepath.Dir(path),
		opts: opts,
	}
	l.loadTextures()
	l.loadMaterials()

	for _, root := range l.roots() {
		l.visit(root, mgl32.Ident4(), map[int]bool{})
	}
	if len(l.meshes) == 0 {
		return nil, fmt.Errorf("no geometry found in %q", path)
	}
	return l.meshes, nil
}

type gltfLoader struct {
	doc  *gltf.Document
	dir  string
	opts LoadOptions

	textures  []*Texture
	materials []*Material
	meshes    []*Mesh
}

func (l *gltfLoader) loadTextures() {
	log := l.opts.logger()
	l.textures = make([]*Texture, len(l.doc.Textures))
	for i, gt := range l.doc.Textures {
		if gt.Source == nil {
			continue
		}
		if *gt.Source < 0 || *gt.Source >= len(l.doc.Images) {
			log.Warn("gltf: texture skipped", "texture", i, "err", fmt.Errorf("image %d out of range", *gt.Source))
			continue
		}
		img := l.doc.Images[*gt.Source]

		var (
			tex *Texture
			err error
		)
		switch {
		case img.BufferView != nil:
			// Binary GLB: image data lives in a buffer view
			var raw []byte
			raw, err = l.readBufferView(*img.BufferView)
			if err == nil {
				name := img.Name
				if name == "" {
					name = fmt.Sprintf("gltf_img_%d", *gt.Source)
				}
				tex, err = decodeImageBytes(name, raw, false)
			}
		case img.URI != "" && !img.IsEmbeddedResource():
			tex, err = LoadTexture(filepath.Join(l.dir, img.URI), false)
		}
		if err != nil {
			log.Warn("gltf: image skipped", "image", *gt.Source, "err", err)
			continue
		}
		l.textures[i] = tex
	}
}

// bufferView returns the view at idx after checking that it lies inside its
// buffer. modeler slices buffer data without bounds checks.
func (l *gltfLoader) bufferView(idx int) (*gltf.BufferView, error) {
	if idx < 0 || idx >= len(l.doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", idx)
	}
	bv := l.doc.BufferViews[idx]
	if bv.Buffer < 0 || bv.Buffer >= len(l.doc.Buffers) {
		return nil, fmt.Errorf("buffer view %d: buffer %d out of range", idx, bv.Buffer)
	}
	if end := bv.ByteOffset + bv.ByteLength; end > len(l.doc.Buffers[bv.Buffer].Data) {
		return nil, fmt.Errorf("buffer view %d: ends at byte %d past buffer length %d",
			idx, end, len(l.doc.Buffers[bv.Buffer].Data))
	}
	return bv, nil
}

func (l *gltfLoader) readBufferView(idx int) ([]byte, error) {
	bv, err := l.bufferView(idx)
	if err != nil {
		return nil, err
	}
	return modeler.ReadBufferView(l.doc, bv)
}

// accessor returns the accessor at idx after checking that its elements fit
// in the referenced buffer view.
func (l *gltfLoader) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(l.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	acr := l.doc.Accessors[idx]
	if acr.BufferView == nil {
		return acr, nil
	}
	bv, err := l.bufferView(*acr.BufferView)
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", idx, err)
	}
	if acr.Count == 0 {
		return acr, nil
	}
	elem := acr.ComponentType.ByteSize() * acr.Type.Components()
	stride := elem
	if bv.ByteStride > stride {
		stride = bv.ByteStride
	}
	if need := acr.ByteOffset + stride*(acr.Count-1) + elem; need > bv.ByteLength {
		return nil, fmt.Errorf("accessor %d: needs %d bytes, buffer view has %d", idx, need, bv.ByteLength)
	}
	return acr, nil
}

func (l *gltfLoader) texture(idx int) *Texture {
	if idx >= 0 && idx < len(l.textures) {
		return l.textures[idx]
	}
	return nil
}

func (l *gltfLoader) loadMaterials() {
	l.materials = make([]*Material, len(l.doc.Materials))
	for i, gm := range l.doc.Materials {
		mat := DefaultMaterial()
		mat.Name = gm.Name

		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.Diffuse = core.Color{
				R: float32(cf[0]), G: float32(cf[1]),
				B: float32(cf[2]), A: float32(cf[3]),
			}
			if pbr.BaseColorTexture != nil {
				mat.DiffuseTexture = l.texture(pbr.BaseColorTexture.Index)
			}
			// roughness drives shininess, metallic drives specular strength
			roughness := float32(pbr.RoughnessFactorOrDefault())
			metallic := float32(pbr.MetallicFactorOrDefault())
			mat.Shininess = (1.0-roughness)*(1.0-roughness)*128.0 + 1.0
			s := 0.1 + metallic*0.7
			mat.Specular = core.Color{R: s, G: s, B: s, A: 1}
		}
		l.materials[i] = mat
	}
}

// roots returns the node indices of the default scene, or every parentless
// node when the file has none.
func (l *gltfLoader) roots() []int {
	if l.doc.Scene != nil && *l.doc.Scene >= 0 && *l.doc.Scene < len(l.doc.Scenes) {
		return l.doc.Scenes[*l.doc.Scene].Nodes
	}
	hasParent := make([]bool, len(l.doc.Nodes))
	for _, gn := range l.doc.Nodes {
		for _, c := range gn.Children {
			if c >= 0 && c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var out []int
	for i := range l.doc.Nodes {
		if !hasParent[i] {
			out = append(out, i)
		}
	}
	return out
}

// visit walks the node tree depth first. path holds the nodes above idx so a
// node listing one of its ancestors as a child is not followed.
func (l *gltfLoader) visit(idx int, parent mgl32.Mat4, path map[int]bool) {
	if idx < 0 || idx >= len(l.doc.Nodes) {
		l.opts.logger().Warn("gltf: node skipped", "node", idx, "err", "out of range")
		return
	}
	if path[idx] {
		l.opts.logger().Warn("gltf: node skipped", "node", idx, "err", "cycle in children")
		return
	}
	path[idx] = true
	defer delete(path, idx)

	gn := l.doc.Nodes[idx]
	world := parent.Mul4(nodeMatrix(gn))

	if gn.Mesh != nil && *gn.Mesh >= 0 && *gn.Mesh < len(l.doc.Meshes) {
		gm := l.doc.Meshes[*gn.Mesh]
		for pi, prim := range gm.Primitives {
			m, err := l.primitive(gm.Name, pi, prim)
			if err != nil {
				l.opts.logger().Warn("gltf: primitive skipped", "mesh", *gn.Mesh, "primitive", pi, "err", err)
				continue
			}
			m.Transform(world)
			l.meshes = append(l.meshes, m)
		}
	}
	for _, c := range gn.Children {
		l.visit(c, world, path)
	}
}

func nodeMatrix(gn *gltf.Node) mgl32.Mat4 {
	if gn.Matrix != gltf.DefaultMatrix && gn.Matrix != [16]float64{} {
		var m mgl32.Mat4
		for i, v := range gn.Matrix {
			m[i] = float32(v)
		}
		return m
	}
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]
	s := gn.ScaleOrDefault()
	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

// primitive converts one glTF mesh primitive into a Mesh.
func (l *gltfLoader) primitive(meshName string, primIdx int, prim *gltf.Primitive) (*Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}
	doc := l.doc

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	acr, err := l.accessor(posIdx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acr, err := l.accessor(idx); err == nil {
			normals, _ = modeler.ReadNormal(doc, acr, nil)
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err := l.accessor(idx); err == nil {
			uvs, _ = modeler.ReadTextureCoord(doc, acr, nil)
		}
	}

	verts := make([]core.Vertex, len(positions))
	for i, p := range positions {
		v := core.Vertex{
			Position: mgl32.Vec3{p[0], p[1], p[2]},
			Normal:   mgl32.Vec3{0, 1, 0},
		}
		if i < len(normals) {
			v.Normal = mgl32.Vec3(normals[i])
		}
		if i < len(uvs) {
			// glTF puts v=0 on the top image row, which is also the first
			// row uploaded for an unflipped texture.
			v.UV = mgl32.Vec2(uvs[i])
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		acr, err := l.accessor(*prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		indices, err = modeler.ReadIndices(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		for _, i := range indices {
			if int(i) >= len(verts) {
				return nil, fmt.Errorf("index %d past %d vertices", i, len(verts))
			}
		}
	}

	m := CreateMeshFromData(name, verts, indices)
	if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(l.materials) {
		m.Material = l.materials[*prim.Material]
	} else {
		m.Material = DefaultMaterial()
	}
	return m, nil
}
