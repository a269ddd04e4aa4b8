package gpu

import (
	"errors"
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// BufferBinding describes one shader-storage-buffer binding point a
// generated compute shader declares: the GL target and usage hint the real
// backend would bind with once a context exists. No gl function is ever
// called here, only its typed enum constants, so this stays safe to
// evaluate in the headless module.
type BufferBinding struct {
	Index  uint32
	Target uint32
	Usage  uint32
}

// DensityShaderBindings lists the SSBO bindings GenerateDensityShader's
// layout(std430, binding = N) declarations expect, in binding order.
func DensityShaderBindings() []BufferBinding {
	return []BufferBinding{
		{Index: 0, Target: gl.SHADER_STORAGE_BUFFER, Usage: gl.STATIC_DRAW},  // ParticleBuffer, readonly
		{Index: 1, Target: gl.SHADER_STORAGE_BUFFER, Usage: gl.STATIC_DRAW},  // NeighborBuffer, readonly
		{Index: 2, Target: gl.SHADER_STORAGE_BUFFER, Usage: gl.STATIC_DRAW},  // NeighborOffsetBuffer, readonly
		{Index: 3, Target: gl.SHADER_STORAGE_BUFFER, Usage: gl.DYNAMIC_DRAW}, // DensityBuffer, writeonly
	}
}

// ShaderManager manages compute shader compilation and caching
type ShaderManager struct {
	cache map[string]*ComputeShader
}

// NewShaderManager creates a new shader manager
func NewShaderManager() *ShaderManager {
	return &ShaderManager{
		cache: make(map[string]*ComputeShader),
	}
}

// CompileComputeShader compiles a compute shader from source
func (m *ShaderManager) CompileComputeShader(source string) (*ComputeShader, error) {
	// Without OpenGL context, we cannot actually compile
	// This is a placeholder that will be implemented when GPU support is added
	return nil, errors.New("OpenGL context not available")
}

// DeleteShader deletes a compiled shader
func (m *ShaderManager) DeleteShader(shader *ComputeShader) error {
	if shader == nil {
		return nil
	}

	// In real implementation, this would call OpenGL delete functions
	shader.ProgramID = 0
	return nil
}

// GetCacheSize returns the number of cached shaders
func (m *ShaderManager) GetCacheSize() int {
	return len(m.cache)
}

// CacheShader adds a shader to the cache
func (m *ShaderManager) CacheShader(key string, shader *ComputeShader) {
	m.cache[key] = shader
}

// GetCachedShader retrieves a shader from the cache
func (m *ShaderManager) GetCachedShader(key string) *ComputeShader {
	return m.cache[key]
}

// ClearCache removes all cached shaders
func (m *ShaderManager) ClearCache() {
	// In real implementation, we would delete all shaders first
	for _, shader := range m.cache {
		_ = m.DeleteShader(shader)
	}
	m.cache = make(map[string]*ComputeShader)
}

// GenerateDensityShader generates the compute-shader source for the
// density-evaluation phase: one invocation per particle, scanning the
// neighbor list the CPU-side SpatialGrid rebuild already produced and
// uploaded into NeighborBuffer. Layout mirrors the SSBO particle-struct
// pattern (position/velocity/density fields, one binding per buffer).
func (m *ShaderManager) GenerateDensityShader(h, mass float64) string {
	return fmt.Sprintf(`#version 430
layout (local_size_x = 16, local_size_y = 1, local_size_z = 1) in;

struct Particle {
    vec2 position;
    vec2 velocity;
};

layout(std430, binding = 0) restrict readonly buffer ParticleBuffer {
    Particle particles[];
};

layout(std430, binding = 1) restrict readonly buffer NeighborBuffer {
    int neighbor_indices[];
};

layout(std430, binding = 2) restrict readonly buffer NeighborOffsetBuffer {
    int neighbor_offsets[]; // [i] .. [i+1] bounds this particle's slice of neighbor_indices
};

layout(std430, binding = 3) restrict writeonly buffer DensityBuffer {
    float density[];
};

uniform float u_h;
uniform float u_mass;
uniform float u_h2;

float poly6(float r2) {
    float hr2 = u_h2 - r2;
    if (hr2 <= 0.0) return 0.0;
    float norm = 315.0 / (64.0 * 3.14159265 * pow(u_h, 9.0));
    return norm * hr2 * hr2 * hr2;
}

void main() {
    uint i = gl_GlobalInvocationID.x;
    if (i >= particles.length()) return;

    float d = u_mass * poly6(0.0);
    int begin = neighbor_offsets[i];
    int end = neighbor_offsets[i + 1];
    for (int k = begin; k < end; k++) {
        uint j = uint(neighbor_indices[k]);
        vec2 diff = particles[i].position - particles[j].position;
        d += u_mass * poly6(dot(diff, diff));
    }
    density[i] = d;
}
`)
}

// ValidateShaderSource validates compute shader source code
func (m *ShaderManager) ValidateShaderSource(source string) bool {
	if source == "" {
		return false
	}

	// Check for required components
	hasVersion := strings.Contains(source, "#version")
	hasMain := strings.Contains(source, "void main()")
	hasLayout := strings.Contains(source, "layout")

	return hasVersion && hasMain && hasLayout
}
