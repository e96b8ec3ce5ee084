package feedforward

import "compress/lzw"
import "encoding/json"
import "fmt"
import "io"
import "os"

import "github.com/pkg/errors"
import "gorgonia.org/tensor"

type tensorJson struct {
	Name  string    `json:"name"`
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

type checkpointJson struct {
	Config  Config       `json:"config"`
	Info    Info         `json:"info"`
	Tensors []tensorJson `json:"tensors"`
}

func (f *FeedforwardNetwork) named() (names []string, tensors []*tensor.Dense) {
	for i := range f.weights {
		names = append(names, fmt.Sprintf("w%d", i), fmt.Sprintf("b%d", i))
		tensors = append(tensors, f.weights[i], f.biases[i])
	}
	return
}

// WriteCompressedWeightsToFile writes model weights to a lzw file
func (f *FeedforwardNetwork) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = f.WriteCompressedWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return errors.Wrapf(err, "write %s", name)
}

// WriteCompressedWeights writes model weights to a writer
func (f *FeedforwardNetwork) WriteCompressedWeights(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)

	ckpt := checkpointJson{Config: f.config, Info: f.Info}
	names, tensors := f.named()
	for i, t := range tensors {
		ckpt.Tensors = append(ckpt.Tensors, tensorJson{
			Name:  names[i],
			Shape: []int(t.Shape()),
			Data:  t.Data().([]float64),
		})
	}
	if err := json.NewEncoder(lw).Encode(ckpt); err != nil {
		return err
	}
	return lw.Close()
}

// ReadCompressedWeightsFromFile reads model weights from a lzw file
func (f *FeedforwardNetwork) ReadCompressedWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	err = f.ReadCompressedWeights(file)
	file.Close()
	return errors.Wrapf(err, "read %s", name)
}

// ReadCompressedWeights reads model weights from a reader. The stored
// configuration must match the network's, dropout excepted.
func (f *FeedforwardNetwork) ReadCompressedWeights(r io.Reader) error {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	var ckpt checkpointJson
	if err := json.NewDecoder(lr).Decode(&ckpt); err != nil {
		return err
	}
	got, want := ckpt.Config, f.config
	got.DropOut, want.DropOut = 0, 0
	if got != want {
		return errors.Errorf("checkpoint shape %+v does not match network %+v", ckpt.Config, f.config)
	}
	names, tensors := f.named()
	if len(ckpt.Tensors) != len(tensors) {
		return errors.Errorf("checkpoint holds %d tensors, network has %d", len(ckpt.Tensors), len(tensors))
	}
	for i, t := range tensors {
		stored := ckpt.Tensors[i]
		if stored.Name != names[i] {
			return errors.Errorf("tensor %d is %q, expected %q", i, stored.Name, names[i])
		}
		if !t.Shape().Eq(tensor.Shape(stored.Shape)) || len(stored.Data) != t.Shape().TotalSize() {
			return errors.Errorf("tensor %s has shape %v, expected %v", stored.Name, stored.Shape, t.Shape())
		}
	}
	for i, t := range tensors {
		copy(t.Data().([]float64), ckpt.Tensors[i].Data)
	}
	f.Info = ckpt.Info
	return nil
}
