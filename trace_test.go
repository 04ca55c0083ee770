package collide2d

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

// runScenarioTrace steps a tumbling box across a static platform,
// recording manifolds, world manifolds and a TOI query per step in a
// deterministic textual form. Every float is printed with full
// precision, so two traces compare equal only if the pipeline is
// bit-for-bit repeatable.
func runScenarioTrace() string {
	var sb strings.Builder

	platform := MakeBox(4, 0.5)
	box := MakeBox(0.4, 0.4)

	xfPlatform := TransformIdentity

	for step := 0; step < 24; step++ {
		x := -3.0 + 0.25*float64(step)
		y := 0.95 - 0.004*float64(step)
		angle := 0.12 * float64(step)
		xfBox := MakeTransform(Vec2{x, y}, angle)

		var manifold Manifold
		CollidePolygons(&manifold, &box, xfBox, &platform, xfPlatform)

		fmt.Fprintf(&sb, "step %d type=%d points=%d normal=%.17g,%.17g\n",
			step, manifold.Type, manifold.PointCount,
			manifold.LocalNormal.X, manifold.LocalNormal.Y)

		var wm WorldManifold
		wm.Initialize(&manifold, xfBox, box.Radius, xfPlatform, platform.Radius)
		for i := 0; i < manifold.PointCount; i++ {
			fmt.Fprintf(&sb, "  p%d id=%08x world=%.17g,%.17g sep=%.17g\n",
				i, manifold.Points[i].ID.Key(),
				wm.Points[i].X, wm.Points[i].Y, wm.Separations[i])
		}

		var toiInput TOIInput
		toiInput.ProxyA.SetPolygon(&box)
		toiInput.ProxyB.SetPolygon(&platform)
		toiInput.SweepA = Sweep{
			C0: Vec2{x, y},
			C:  Vec2{x + 0.25, y - 0.004},
			A0: angle,
			A:  angle + 0.12,
		}
		toiInput.SweepB = Sweep{}
		toiInput.TMax = 1.0

		var toiOutput TOIOutput
		TimeOfImpact(&toiOutput, &toiInput)
		fmt.Fprintf(&sb, "  toi state=%d t=%.17g\n", toiOutput.State, toiOutput.T)
	}

	return sb.String()
}

func TestPipelineTraceRepeatable(t *testing.T) {
	trace1 := runScenarioTrace()
	trace2 := runScenarioTrace()

	if trace1 != trace2 {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(trace1),
			B:        difflib.SplitLines(trace2),
			FromFile: "first run",
			ToFile:   "second run",
			Context:  2,
		})
		require.NoError(t, err)
		t.Fatalf("pipeline trace is not repeatable:\n%s", diff)
	}
}
