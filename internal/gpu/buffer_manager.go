package gpu

import (
	"errors"
)

// BufferManager manages GPU buffer creation and operations
type BufferManager struct {
	bufferPool map[int][]*GPUMemoryBuffer // Pool of reusable buffers by size
}

// NewBufferManager creates a new buffer manager
func NewBufferManager() *BufferManager {
	return &BufferManager{
		bufferPool: make(map[int][]*GPUMemoryBuffer),
	}
}

// CreateFloatBuffer creates a GPU buffer for float data
func (m *BufferManager) CreateFloatBuffer(elementCount int) (*GPUMemoryBuffer, error) {
	// Without OpenGL context, we cannot actually create GPU buffers
	return nil, errors.New("OpenGL context not available")
}

// FreeBuffer frees a GPU buffer
func (m *BufferManager) FreeBuffer(buffer *GPUMemoryBuffer) error {
	if buffer == nil {
		return nil
	}

	// Mark buffer as freed
	buffer.BufferID = 0
	buffer.Size = 0
	return nil
}

// UploadFloatData uploads float data to GPU buffer
func (m *BufferManager) UploadFloatData(buffer *GPUMemoryBuffer, data []float32) error {
	if buffer == nil {
		return errors.New("buffer is nil")
	}

	// Without OpenGL context, this is a no-op
	// In real implementation, this would use glBufferData
	return nil
}

// DownloadFloatData downloads float data from GPU buffer
func (m *BufferManager) DownloadFloatData(buffer *GPUMemoryBuffer, elementCount int) ([]float32, error) {
	if buffer == nil {
		return nil, errors.New("buffer is nil")
	}

	// Without OpenGL context, return dummy data
	// In real implementation, this would use glGetBufferSubData
	return make([]float32, elementCount), nil
}

// CopyBuffer copies data from one buffer to another
func (m *BufferManager) CopyBuffer(src, dst *GPUMemoryBuffer) error {
	if src == nil || dst == nil {
		return errors.New("source or destination buffer is nil")
	}

	if src.Size != dst.Size {
		return errors.New("buffer sizes do not match")
	}

	// Without OpenGL context, this is a no-op
	// In real implementation, this would use glCopyBufferSubData
	return nil
}

// ResizeBuffer resizes a GPU buffer
func (m *BufferManager) ResizeBuffer(buffer *GPUMemoryBuffer, newElementCount int) error {
	if buffer == nil {
		return errors.New("buffer is nil")
	}

	// Update size (in real implementation, would reallocate)
	buffer.Size = newElementCount * 4 // 4 bytes per float
	return nil
}

// SynchronizeBuffer ensures GPU operations on buffer are complete
func (m *BufferManager) SynchronizeBuffer(buffer *GPUMemoryBuffer) error {
	if buffer == nil {
		return errors.New("buffer is nil")
	}

	// Without OpenGL context, this is a no-op
	// In real implementation, this would use glMemoryBarrier or glFinish
	return nil
}

// GetPooledBuffer gets a buffer from the pool
func (m *BufferManager) GetPooledBuffer(size int) *GPUMemoryBuffer {
	// Check if we have a buffer of this size in the pool
	if buffers, ok := m.bufferPool[size]; ok && len(buffers) > 0 {
		// Pop buffer from pool
		buffer := buffers[len(buffers)-1]
		m.bufferPool[size] = buffers[:len(buffers)-1]
		return buffer
	}

	// No buffer available in pool
	return nil
}

// ReturnToPool returns a buffer to the pool for reuse
func (m *BufferManager) ReturnToPool(buffer *GPUMemoryBuffer) {
	if buffer == nil || buffer.Size == 0 {
		return
	}

	// Add to pool
	size := buffer.Size
	m.bufferPool[size] = append(m.bufferPool[size], buffer)
}
