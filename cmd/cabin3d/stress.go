package main

import (
	"fmt"
	"math/rand"
	"time"

	"cabin3d/internal/collide"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
)

var (
	flagObstacles int
	flagSteps     int
	flagSeed      int64
)

// stressCmd hammers the lightweight solver with dense overlapping
// obstacle clusters and random agent walks, then reports how much
// residual correction a follow-up zero-displacement resolve still finds.
var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Headless collision solver stress run",
	RunE: func(cmd *cobra.Command, args []string) error {
		rng := rand.New(rand.NewSource(flagSeed))
		reg := collide.NewRegistry()

		// Clustered, heavily overlapping primitives around a few centers.
		for i := 0; i < flagObstacles; i++ {
			cx := float32(rng.Intn(5))*8 - 16
			cz := float32(rng.Intn(5))*8 - 16
			x := cx + rng.Float32()*3 - 1.5
			z := cz + rng.Float32()*3 - 1.5
			if i%2 == 0 {
				half := 0.3 + rng.Float32()*1.2
				reg.AddBox(
					rl.Vector2{X: x - half, Y: z - half},
					rl.Vector2{X: x + half, Y: z + half},
					0, 3)
			} else {
				reg.AddCircle(rl.Vector2{X: x, Y: z}, 0.2+rng.Float32(), 0, 3)
			}
		}

		const radius = 0.35
		pos := rl.Vector3{}
		var (
			maxResidual   float32
			sumResidual   float64
			residualCount int
		)

		start := time.Now()
		for i := 0; i < flagSteps; i++ {
			desired := rl.Vector3{
				X: rng.Float32()*0.4 - 0.2,
				Z: rng.Float32()*0.4 - 0.2,
			}
			pos = reg.ResolveHorizontal(pos, desired, radius, 0, 1.8)

			// A second resolve with no displacement measures what the
			// first one left unresolved.
			settled := reg.ResolveHorizontal(pos, rl.Vector3{}, radius, 0, 1.8)
			residual := rl.Vector3Length(rl.Vector3Subtract(settled, pos))
			if residual > 1e-4 {
				residualCount++
			}
			if residual > maxResidual {
				maxResidual = residual
			}
			sumResidual += float64(residual)
		}
		elapsed := time.Since(start)

		perStep := elapsed / time.Duration(flagSteps)
		fmt.Printf("obstacles:        %d\n", reg.Count())
		fmt.Printf("steps:            %d\n", flagSteps)
		fmt.Printf("elapsed:          %v (%v/step)\n", elapsed, perStep)
		fmt.Printf("residual steps:   %d (%.2f%%)\n", residualCount,
			100*float64(residualCount)/float64(flagSteps))
		fmt.Printf("max residual:     %.5f\n", maxResidual)
		fmt.Printf("mean residual:    %.6f\n", sumResidual/float64(flagSteps))
		return nil
	},
}

func init() {
	stressCmd.Flags().IntVar(&flagObstacles, "obstacles", 400, "number of obstacles")
	stressCmd.Flags().IntVar(&flagSteps, "steps", 10000, "agent steps to simulate")
	stressCmd.Flags().Int64Var(&flagSeed, "seed", 1, "rng seed")
	rootCmd.AddCommand(stressCmd)
}
