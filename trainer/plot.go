package trainer

import "os"

import "github.com/pkg/errors"
import chart "github.com/wcharczuk/go-chart"

// PlotLosses writes the training and validation loss per epoch as a PNG.
// At least two epochs are needed to span the x axis.
func PlotLosses(path string, train, val []float64) error {
	if len(train) != len(val) {
		return errors.Errorf("%d training but %d validation losses", len(train), len(val))
	}
	if len(train) < 2 {
		return errors.Errorf("need at least two epochs to plot, have %d", len(train))
	}
	epochs := make([]float64, len(train))
	for i := range epochs {
		epochs[i] = float64(i)
	}

	graph := chart.Chart{
		Title:      "Loss",
		TitleStyle: chart.StyleShow(),
		XAxis: chart.XAxis{
			Name:      "Epoch",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      "Loss",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "training",
				XValues: epochs,
				YValues: train,
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.ColorBlue,
				},
			},
			chart.ContinuousSeries{
				Name:    "validation",
				XValues: epochs,
				YValues: val,
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.ColorRed,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return errors.Wrapf(err, "render %s", path)
	}
	return f.Close()
}
