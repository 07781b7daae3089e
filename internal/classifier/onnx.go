package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"
)

// Metadata describes an exported classifier: its class list and tensor shapes.
// It ships as a JSON sidecar next to the .onnx file.
type Metadata struct {
	Classes         []string `json:"classes"`
	InputShape      []int64  `json:"input_shape"`      // e.g. [1, 1, 224, 224]
	ActivationShape []int64  `json:"activation_shape"` // e.g. [1, 1024, 7, 7]
	ImageSize       int      `json:"image_size"`
}

// ONNXModel runs a chest X-ray classifier exported to ONNX. The export wraps
// the network so a single run yields the per-class scores together with the
// chosen convolutional layer's activations and the gradient of the selected
// class score with respect to them. The class is selected via a one-hot
// second input, which keeps the graph static.
type ONNXModel struct {
	session  *ort.AdvancedSession
	metadata Metadata

	inputTensor  *ort.Tensor[float32]
	targetTensor *ort.Tensor[float32]
	scoresTensor *ort.Tensor[float32]
	actsTensor   *ort.Tensor[float32]
	gradsTensor  *ort.Tensor[float32]
}

// NewONNXModel loads an exported model and its metadata sidecar.
func NewONNXModel(modelPath, metadataPath string) (*ONNXModel, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	metaFile, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(metaFile, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if len(metadata.Classes) == 0 {
		return nil, fmt.Errorf("metadata lists no classes")
	}
	if len(metadata.ActivationShape) != 4 {
		return nil, fmt.Errorf("activation shape must be NCHW, got %v", metadata.ActivationShape)
	}

	numClasses := int64(len(metadata.Classes))

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	targetTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, numClasses))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create target tensor: %w", err)
	}
	scoresTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, numClasses))
	if err != nil {
		inputTensor.Destroy()
		targetTensor.Destroy()
		return nil, fmt.Errorf("failed to create scores tensor: %w", err)
	}
	actsTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.ActivationShape...))
	if err != nil {
		inputTensor.Destroy()
		targetTensor.Destroy()
		scoresTensor.Destroy()
		return nil, fmt.Errorf("failed to create activations tensor: %w", err)
	}
	gradsTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.ActivationShape...))
	if err != nil {
		inputTensor.Destroy()
		targetTensor.Destroy()
		scoresTensor.Destroy()
		actsTensor.Destroy()
		return nil, fmt.Errorf("failed to create gradients tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input", "target"},
		[]string{"scores", "activations", "gradients"},
		[]ort.ArbitraryTensor{inputTensor, targetTensor},
		[]ort.ArbitraryTensor{scoresTensor, actsTensor, gradsTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		targetTensor.Destroy()
		scoresTensor.Destroy()
		actsTensor.Destroy()
		gradsTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXModel{
		session:      session,
		metadata:     metadata,
		inputTensor:  inputTensor,
		targetTensor: targetTensor,
		scoresTensor: scoresTensor,
		actsTensor:   actsTensor,
		gradsTensor:  gradsTensor,
	}, nil
}

// Classes returns the ordered pathology names matching score indices.
func (m *ONNXModel) Classes() []string {
	return m.metadata.Classes
}

// Predict runs forward inference and returns one score per class.
func (m *ONNXModel) Predict(t *Tensor) ([]float32, error) {
	if err := m.run(t, -1); err != nil {
		return nil, err
	}
	scores := make([]float32, len(m.metadata.Classes))
	copy(scores, m.scoresTensor.GetData())
	return scores, nil
}

// ActivationGradients runs the model with the given class selected and
// returns the target layer's activations and gradients.
func (m *ONNXModel) ActivationGradients(t *Tensor, classIndex int) (*Volume, *Volume, error) {
	if classIndex < 0 || classIndex >= len(m.metadata.Classes) {
		return nil, nil, fmt.Errorf("%w: %d of %d", ErrInvalidClassIndex, classIndex, len(m.metadata.Classes))
	}
	if err := m.run(t, classIndex); err != nil {
		return nil, nil, err
	}

	shape := m.metadata.ActivationShape
	channels, rows, cols := int(shape[1]), int(shape[2]), int(shape[3])
	acts := NewVolume(channels, rows, cols)
	grads := NewVolume(channels, rows, cols)
	for i, v := range m.actsTensor.GetData() {
		acts.Data[i] = float64(v)
	}
	for i, v := range m.gradsTensor.GetData() {
		grads.Data[i] = float64(v)
	}
	return acts, grads, nil
}

// run copies the input in place, sets the class one-hot (or all zeros for
// plain inference) and executes the session.
func (m *ONNXModel) run(t *Tensor, classIndex int) error {
	if t == nil || len(t.Data) != len(m.inputTensor.GetData()) {
		return fmt.Errorf("input tensor size mismatch: got %d, want %d",
			tensorLen(t), len(m.inputTensor.GetData()))
	}
	copy(m.inputTensor.GetData(), t.Data)

	target := m.targetTensor.GetData()
	for i := range target {
		target[i] = 0
	}
	if classIndex >= 0 {
		target[classIndex] = 1
	}

	if err := m.session.Run(); err != nil {
		return fmt.Errorf("inference failed: %w", err)
	}
	return nil
}

func tensorLen(t *Tensor) int {
	if t == nil {
		return 0
	}
	return len(t.Data)
}

// Close releases session and tensor resources.
func (m *ONNXModel) Close() {
	for _, t := range []*ort.Tensor[float32]{
		m.inputTensor, m.targetTensor, m.scoresTensor, m.actsTensor, m.gradsTensor,
	} {
		if t != nil {
			t.Destroy()
		}
	}
	if m.session != nil {
		m.session.Destroy()
	}
	ort.DestroyEnvironment()
}
