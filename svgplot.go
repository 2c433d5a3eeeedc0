package sgp4

import (
	"fmt"
	"math"
	"strings"
)

// polar plot geometry
const (
	svgSize         = 600
	svgMargin       = 50
	svgCenter       = svgSize / 2
	svgRadius       = svgSize/2 - svgMargin
	svgPointRadius  = 5.0
	svgLabelOffset  = 8.0
	svgCardinalFont = 16
	svgGridFont     = 10
)

// polarToCartesian maps azimuth/elevation in degrees to plot coordinates,
// with the zenith at the center and the horizon on the outer circle.
func polarToCartesian(azimuth, elevation, radius float64) (x, y float64) {
	r := radius * (1.0 - elevation/90.0)
	if elevation < 0 {
		r = radius * (1.0 + math.Abs(elevation)/90.0)
	}
	azRad := azimuth * deg2rad
	return svgCenter + r*math.Sin(azRad), svgCenter - r*math.Cos(azRad)
}

// elevationColor fades from red at the horizon to green at the zenith.
func elevationColor(elevation float64) string {
	t := math.Min(math.Max(elevation, 0.0), 90.0) / 90.0
	return fmt.Sprintf("#%02x%02x00", int(255*(1.0-t)), int(255*t))
}

// PolarSVG renders the pass as a polar sky plot and returns the SVG
// document.
func (p *PassDetails) PolarSVG() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg" style="background-color:white;">`, svgSize, svgSize)
	if len(p.DataPoints) < 2 {
		fmt.Fprintf(&b, `<text x="50" y="50" fill="black">Not enough data points for pass plot.</text></svg>`)
		return b.String()
	}

	// horizon circle and dashed elevation rings
	fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" stroke="black" stroke-width="1" fill="none"/>`, svgCenter, svgCenter, svgRadius)
	for _, el := range []float64{10.0, 30.0, 60.0} {
		radius := svgRadius * (1.0 - el/90.0)
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%f" stroke="dimgray" stroke-width="0.5" fill="none" stroke-dasharray="4,4"/>`, svgCenter, svgCenter, radius)
		fmt.Fprintf(&b, `<text x="%d" y="%f" fill="dimgray" font-size="%d" text-anchor="start">%d°</text>`, svgCenter+5, float64(svgCenter)-radius-3, svgGridFont, int(el))
	}
	fmt.Fprintf(&b, `<text x="%d" y="%d" fill="dimgray" font-size="%d" text-anchor="middle" dominant-baseline="middle">90°</text>`, svgCenter, svgCenter, svgGridFont)

	// cardinal ticks and labels
	for dir, az := range map[string]float64{"N": 0, "E": 90, "S": 180, "W": 270} {
		x1, y1 := polarToCartesian(az, 0, svgRadius)
		x2, y2 := polarToCartesian(az, 0, svgRadius+8)
		fmt.Fprintf(&b, `<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="black" stroke-width="1"/>`, x1, y1, x2, y2)
		lx, ly := polarToCartesian(az, 0, svgRadius+22)
		fmt.Fprintf(&b, `<text x="%f" y="%f" fill="black" font-size="%d" text-anchor="middle" dominant-baseline="middle">%s</text>`, lx, ly, svgCardinalFont, dir)
	}

	// the pass path, colored by elevation
	for i := 0; i < len(p.DataPoints)-1; i++ {
		p1 := p.DataPoints[i]
		p2 := p.DataPoints[i+1]
		x1, y1 := polarToCartesian(p1.Azimuth, p1.Elevation, svgRadius)
		x2, y2 := polarToCartesian(p2.Azimuth, p2.Elevation, svgRadius)
		color := elevationColor((p1.Elevation + p2.Elevation) / 2.0)
		fmt.Fprintf(&b, `<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="%s" stroke-width="3"/>`, x1, y1, x2, y2, color)
	}

	// AOS, LOS and culmination markers
	aosX, aosY := polarToCartesian(p.AOSAzimuth, 0, svgRadius)
	fmt.Fprintf(&b, `<circle cx="%f" cy="%f" r="%f" fill="darkblue" stroke="black" stroke-width="0.5"/>`, aosX, aosY, svgPointRadius)
	fmt.Fprintf(&b, `<text x="%f" y="%f" fill="darkblue" font-size="12" text-anchor="middle">AOS</text>`, aosX, aosY-svgLabelOffset)
	losX, losY := polarToCartesian(p.LOSAzimuth, 0, svgRadius)
	fmt.Fprintf(&b, `<circle cx="%f" cy="%f" r="%f" fill="darkred" stroke="black" stroke-width="0.5"/>`, losX, losY, svgPointRadius)
	fmt.Fprintf(&b, `<text x="%f" y="%f" fill="darkred" font-size="12" text-anchor="middle">LOS</text>`, losX, losY+2*svgLabelOffset)
	maxX, maxY := polarToCartesian(p.MaxElevationAz, p.MaxElevation, svgRadius)
	fmt.Fprintf(&b, `<circle cx="%f" cy="%f" r="%f" fill="lime" stroke="darkgreen" stroke-width="1.5"/>`, maxX, maxY, svgPointRadius+1)
	fmt.Fprintf(&b, `<text x="%f" y="%f" fill="darkgreen" font-size="12" text-anchor="middle">%.0f°</text>`, maxX, maxY-svgLabelOffset-2, p.MaxElevation)

	b.WriteString(`</svg>`)
	return b.String()
}
