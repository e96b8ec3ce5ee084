package datasets

import "math/rand"
import "sort"

import "github.com/pkg/errors"

import "github.com/neurlang/jetclassifier/parallel"

// ChunkIndices splits list into consecutive chunks of chunkSize. The chunk size
// is clamped to the list length and the trailing partial chunk is discarded.
func ChunkIndices(list []int, chunkSize int) [][]int {
	if chunkSize > len(list) {
		chunkSize = len(list)
	}
	if chunkSize <= 0 {
		return nil
	}
	var chunks = make([][]int, 0, len(list)/chunkSize)
	for start := 0; start+chunkSize <= len(list); start += chunkSize {
		chunks = append(chunks, list[start:start+chunkSize:start+chunkSize])
	}
	return chunks
}

// ChunkSizes returns the per-file chunk sizes used by BalanceEpochs, keyed by file index.
// Signal files contribute minOcc jets, background files minOcc scaled by the
// ratio of signal to background files.
func ChunkSizes(fileIndex []int, signalFiles []int) (map[int]int, error) {
	if len(fileIndex) == 0 {
		return nil, errors.New("balance: no jets")
	}
	counts := make(map[int]int)
	for _, f := range fileIndex {
		counts[f]++
	}
	var minOcc = len(fileIndex)
	for _, c := range counts {
		if c < minOcc {
			minOcc = c
		}
	}
	isSignal := make(map[int]bool, len(signalFiles))
	for _, f := range signalFiles {
		isSignal[f] = true
	}
	numSig := len(signalFiles)
	numBkg := len(counts)
	for f := range counts {
		if isSignal[f] {
			numBkg--
		}
	}
	sizes := make(map[int]int, len(counts))
	for f := range counts {
		if isSignal[f] {
			sizes[f] = minOcc
			continue
		}
		size := int(float64(minOcc) * (float64(numSig) / float64(numBkg)))
		if size < 1 {
			return nil, errors.Errorf("balance: background file %d gets chunk size %d (%d signal files, %d background files, %d min jets)",
				f, size, numSig, numBkg, minOcc)
		}
		sizes[f] = size
	}
	return sizes, nil
}

// BalanceEpochs draws numEpochs index sets over jets whose source files are
// given by fileIndex. Each file's jets are shuffled and chunked, and every
// epoch takes one random chunk per file, files in ascending order.
func BalanceEpochs(fileIndex []int, signalFiles []int, rng *rand.Rand, numEpochs int) ([][]int, error) {
	sizes, err := ChunkSizes(fileIndex, signalFiles)
	if err != nil {
		return nil, err
	}
	files := make([]int, 0, len(sizes))
	for f := range sizes {
		files = append(files, f)
	}
	sort.Ints(files)

	chunks := make([][][]int, len(files))
	for i, f := range files {
		var sub []int
		for j, fi := range fileIndex {
			if fi == f {
				sub = append(sub, j)
			}
		}
		rng.Shuffle(len(sub), func(a, b int) { sub[a], sub[b] = sub[b], sub[a] })
		chunks[i] = ChunkIndices(sub, sizes[f])
	}

	epochs := make([][]int, numEpochs)
	for e := range epochs {
		var picks = make([]int, len(files))
		for i := range files {
			picks[i] = rng.Intn(len(chunks[i]))
		}
		var set []int
		for i := range files {
			set = append(set, chunks[i][picks[i]]...)
		}
		epochs[e] = set
	}
	return epochs, nil
}

// Fingerprint digests an index set, so that two runs can be checked for drawing the same epochs
func Fingerprint(indices []int) [32]byte {
	h := parallel.NewUint32Hasher(len(indices))
	parallel.ForEach(len(indices), 0, func(i int) {
		h.MustPutUint32(i, uint32(indices[i]))
	})
	return h.Sum()
}
