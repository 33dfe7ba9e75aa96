// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader transforms lit and unlit scene meshes.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader shades scene meshes with the light rig.
//
//go:embed scene.frag
var SceneFragmentShader string

// DepthVertexShader renders the sun shadow map.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is the empty fragment stage of the shadow pass.
//
//go:embed depth.frag
var DepthFragmentShader string
