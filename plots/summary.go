package plots

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"fieldstats/statsio"
)

// FieldSummary renders a 2x2 panel for one field's day-over-day change
// record: previous vs current mean for each signal, plus the raw deltas.
func FieldSummary(rec statsio.ChangeRecord) ([]byte, error) {
	ndvi, err := prevNowChart("NDVI", rec.NDVIMeanPrev, rec.NDVIMean, rgb(0x00, 0x64, 0x00))
	if err != nil {
		return nil, err
	}
	ndvi.Y.Min, ndvi.Y.Max = 0, 1

	soil, err := prevNowChart("Soil Moisture", rec.SoilMoistureMeanPrev, rec.SoilMoistureMean, rgb(0x00, 0x00, 0x8B))
	if err != nil {
		return nil, err
	}
	soil.Y.Min, soil.Y.Max = 0, 1

	temp, err := prevNowChart("Temperature (C)", rec.TemperatureMeanPrev, rec.TemperatureMean, rgb(0x8B, 0x00, 0x00))
	if err != nil {
		return nil, err
	}

	deltas, err := deltaChart(rec)
	if err != nil {
		return nil, err
	}

	ndvi.Title.Text = fmt.Sprintf("%s - %s\n%s", rec.FieldName, rec.Date, ndvi.Title.Text)
	panels := [][]*plot.Plot{{ndvi, soil}, {temp, deltas}}

	img := vgimg.New(10*vg.Inch, 8*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 4, PadBottom: vg.Millimeter * 4,
		PadLeft: vg.Millimeter * 4, PadRight: vg.Millimeter * 4,
	}
	canvases := plot.Align(panels, tiles, dc)
	for i, row := range panels {
		for j, p := range row {
			p.Draw(canvases[i][j])
		}
	}

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func prevNowChart(title string, prev, now *float64, c color.RGBA) (*plot.Plot, error) {
	bars, err := plotter.NewBarChart(plotter.Values{val(prev), val(now)}, vg.Points(40))
	if err != nil {
		return nil, err
	}
	bars.Color = c

	p := plot.New()
	p.Title.Text = title
	p.Add(bars)
	p.NominalX("prev", "now")
	return p, nil
}

func deltaChart(rec statsio.ChangeRecord) (*plot.Plot, error) {
	values := plotter.Values{
		val(rec.NDVIMeanChange),
		val(rec.SoilMoistureMeanChange),
		val(rec.TemperatureMeanChange),
	}
	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return nil, err
	}
	bars.Color = rgb(0x44, 0x44, 0x44)

	p := plot.New()
	p.Title.Text = "Day-over-day change"
	p.Add(bars)
	p.NominalX("NDVI", "Soil", "Temp")

	zero := plotter.XYs{{X: -0.5, Y: 0}, {X: 2.5, Y: 0}}
	line, err := plotter.NewLine(zero)
	if err != nil {
		return nil, err
	}
	line.Width = vg.Points(0.5)
	p.Add(line)
	return p, nil
}

func val(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
