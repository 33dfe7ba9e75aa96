package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/poolviz/internal/engine/geometry"
)

// gpuMesh is a mesh uploaded to vertex and index buffers.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	version       uint64
	used          bool
}

// meshCache keeps one GPU copy per mesh and re-uploads vertex data when
// the mesh Version changes.
type meshCache struct {
	meshes map[*geometry.Mesh]*gpuMesh
}

func newMeshCache() *meshCache {
	return &meshCache{meshes: make(map[*geometry.Mesh]*gpuMesh)}
}

func (c *meshCache) get(m *geometry.Mesh) *gpuMesh {
	g, ok := c.meshes[m]
	if !ok {
		g = upload(m)
		c.meshes[m] = g
	} else if g.version != m.Version {
		g.update(m)
	}
	g.used = true
	return g
}

func upload(m *geometry.Mesh) *gpuMesh {
	g := &gpuMesh{version: m.Version, indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	if len(m.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.DYNAMIC_DRAW)
	}

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	if len(m.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	}

	// Position (location 0) and normal (location 1).
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexSize, 12)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) update(m *geometry.Mesh) {
	if len(m.Vertices) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]))
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	}
	g.version = m.Version
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
}

// sweep frees meshes that were not drawn since the previous sweep, such as
// the old basin after a rebuild.
func (c *meshCache) sweep() int {
	freed := 0
	for m, g := range c.meshes {
		if !g.used {
			g.destroy()
			delete(c.meshes, m)
			freed++
			continue
		}
		g.used = false
	}
	return freed
}

func (c *meshCache) destroy() {
	for m, g := range c.meshes {
		g.destroy()
		delete(c.meshes, m)
	}
}

func (g *gpuMesh) destroy() {
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
}

// vertexSize is the byte size of geometry.Vertex: six float32.
const vertexSize = 24
