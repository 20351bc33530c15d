package domain

const unknownDescription = "Unknown"

// EmbeddingDevice selects where the embedding model runs.
type EmbeddingDevice string

// Available embedding devices.
const (
	// DeviceCPU runs the embedding model on the CPU.
	DeviceCPU EmbeddingDevice = "cpu"

	// DeviceAccelerated runs the embedding model on a GPU or other accelerator.
	DeviceAccelerated EmbeddingDevice = "accelerated"
)

// IsValid returns true if the device is recognised.
func (d EmbeddingDevice) IsValid() bool {
	switch d {
	case DeviceCPU, DeviceAccelerated:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d EmbeddingDevice) String() string {
	return string(d)
}

// Description returns a human-readable description of the device.
func (d EmbeddingDevice) Description() string {
	switch d {
	case DeviceCPU:
		return "CPU"
	case DeviceAccelerated:
		return "Accelerated (GPU)"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}
