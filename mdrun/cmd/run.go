package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/mdsimlab/counterrand/moldyn"
	"github.com/mdsimlab/counterrand/monitoring"
	"github.com/mdsimlab/counterrand/parallel"
	"github.com/mdsimlab/counterrand/recording"
)

var runFlags struct {
	threads   int
	seed      uint32
	atoms     int
	timesteps uint32
	record    string
	monitor   bool
	port      int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Assign masses and thermalize atoms over a number of timesteps",
	Run: func(cmd *cobra.Command, _ []string) {
		applyEnv(cmd)
		run()
	},
}

func init() {
	runCmd.Flags().IntVarP(&runFlags.threads, "threads", "t", 0,
		"number of parallel workers, 0 uses all CPUs")
	runCmd.Flags().Uint32VarP(&runFlags.seed, "seed", "s", 1,
		"key of the pseudorandom function, determines the whole run")
	runCmd.Flags().IntVarP(&runFlags.atoms, "atoms", "n", 10,
		"number of atoms")
	runCmd.Flags().Uint32Var(&runFlags.timesteps, "timesteps", 2,
		"number of thermalization timesteps")
	runCmd.Flags().StringVar(&runFlags.record, "record", "",
		"record per-atom state to this SQLite database")
	runCmd.Flags().BoolVar(&runFlags.monitor, "monitor", false,
		"serve run progress over HTTP")
	runCmd.Flags().IntVar(&runFlags.port, "monitor-port", 0,
		"port of the monitoring server, 0 picks a random port")

	rootCmd.AddCommand(runCmd)
}

// applyEnv lets MDRUN_SEED and MDRUN_THREADS stand in for flags that were
// not given on the command line.
func applyEnv(cmd *cobra.Command) {
	if !cmd.Flags().Changed("seed") {
		if v, ok := os.LookupEnv("MDRUN_SEED"); ok {
			seed, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid MDRUN_SEED %q: %s\n", v, err)
				atexit.Exit(1)
			}
			runFlags.seed = uint32(seed)
		}
	}

	if !cmd.Flags().Changed("threads") {
		if v, ok := os.LookupEnv("MDRUN_THREADS"); ok {
			threads, err := strconv.Atoi(v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid MDRUN_THREADS %q: %s\n", v, err)
				atexit.Exit(1)
			}
			runFlags.threads = threads
		}
	}
}

type atomRecord struct {
	Timestep uint32
	ID       uint32
	Mass     float64
	Vx       float64
	Vy       float64
	Vz       float64
}

func run() {
	threads := runFlags.threads
	if threads < 1 {
		threads = parallel.DefaultWorkers()
	}

	system := moldyn.NewSystem(runFlags.atoms, runFlags.seed, threads)

	var monitor *monitoring.Monitor
	var bar *monitoring.ProgressBar
	if runFlags.monitor {
		monitor = monitoring.NewMonitor().WithPortNumber(runFlags.port)
		monitor.StartServer()
		bar = monitor.CreateProgressBar("thermalize",
			uint64(runFlags.timesteps))
	}

	var recorder recording.Recorder
	if runFlags.record != "" {
		recorder = recording.New(runFlags.record)
		recorder.CreateTable("atoms", atomRecord{})
		defer recorder.Close()
	}

	fmt.Printf("pseudo-random function key: %d\n", runFlags.seed)
	fmt.Printf("running with %d threads\n", threads)

	// Masses uniformly split between hydrogen (1 amu) and oxygen (16 amu).
	system.AssignMasses(1*moldyn.AMU, 16*moldyn.AMU)

	for step := uint32(1); step <= runFlags.timesteps; step++ {
		system.Thermalize(step)
		printAtoms(system, step)

		if recorder != nil {
			for _, a := range system.Atoms {
				recorder.Insert("atoms", atomRecord{
					Timestep: step,
					ID:       a.ID,
					Mass:     a.Mass,
					Vx:       a.Vx,
					Vy:       a.Vy,
					Vz:       a.Vz,
				})
			}
		}

		if bar != nil {
			bar.IncrementFinished(1)
		}
	}

	if monitor != nil {
		monitor.CompleteProgressBar(bar)
	}
}

func printAtoms(system *moldyn.System, timestep uint32) {
	fmt.Printf("id mass vx vy vz thermalized at timestep=%d\n", timestep)
	for _, a := range system.Atoms {
		fmt.Printf("%d %g %g %g %g\n", a.ID, a.Mass, a.Vx, a.Vy, a.Vz)
	}
}
