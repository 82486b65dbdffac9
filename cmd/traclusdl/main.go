package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nerevar/traclusdl/internal/api"
	"github.com/nerevar/traclusdl/internal/cluster"
	"github.com/nerevar/traclusdl/internal/config"
	"github.com/nerevar/traclusdl/internal/corridor"
	"github.com/nerevar/traclusdl/internal/database"
	"github.com/nerevar/traclusdl/internal/discovery"
	"github.com/nerevar/traclusdl/internal/export"
	"github.com/nerevar/traclusdl/internal/handler"
	"github.com/nerevar/traclusdl/internal/ingest"
	"github.com/nerevar/traclusdl/internal/models"
	"github.com/nerevar/traclusdl/internal/monitor"
	"github.com/nerevar/traclusdl/internal/progress"
	"github.com/nerevar/traclusdl/internal/queue"
	"github.com/nerevar/traclusdl/internal/repository"
	"github.com/nerevar/traclusdl/internal/service"
	"github.com/nerevar/traclusdl/internal/spatial"
	"github.com/nerevar/traclusdl/internal/summary"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "convert" {
		runConvert(os.Args[2:])
		return
	}

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatal("invalid arguments: ", err)
	}

	var runRepo *repository.RunRepository
	if cfg.DBPath != "" {
		if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
			log.Fatal("failed to initialize run store: ", err)
		}
		defer database.Close()

		mm := database.NewMigrationManager(database.GetDB(), "internal/database/migrations")
		if err := mm.RunMigrations(); err != nil {
			log.Fatal("failed to run migrations: ", err)
		}
		runRepo = repository.NewRunRepository(database.GetDB())
	}

	registry := monitor.NewRegistry()

	if cfg.Monitor != "" {
		var runService *service.RunService
		if runRepo != nil {
			runService = service.NewRunService(runRepo)
		}
		h := handler.NewRunHandler(registry, runService, func(inputPath string) (string, error) {
			runCfg := *cfg
			runCfg.InputPath = inputPath
			id := uuid.NewString()
			registry.Start(id)
			go executeAndRecord(id, &runCfg, registry, runRepo)
			return id, nil
		})
		router := api.SetupRouter(h, cfg.MonitorToken)
		go func() {
			log.Printf("monitor API listening on %s", cfg.Monitor)
			if err := router.Run(cfg.Monitor); err != nil {
				log.Fatal("monitor API failed: ", err)
			}
		}()
	}

	id := uuid.NewString()
	registry.Start(id)
	if runRepo != nil {
		if err := createRunRow(runRepo, id, cfg); err != nil {
			log.Printf("failed to record run %s: %v", id, err)
		}
	}
	obs := progress.NewLogObserver()
	defer obs.Close()

	result, err := executeRun(cfg, progress.Observer(multiObserver{obs, registry.Observer(id)}))
	if err != nil {
		if runRepo != nil {
			runRepo.Fail(id, err, time.Now())
		}
		log.Fatal("run failed: ", err)
	}

	if runRepo != nil {
		if err := persistRun(runRepo, id, result); err != nil {
			log.Printf("failed to persist run %s: %v", id, err)
		}
	}

	printSummary(result)
}

// multiObserver fans out events to several observers, used so a run can be
// logged and tracked in the monitor registry at the same time.
type multiObserver []progress.Observer

func (m multiObserver) OnLoadComplete(e progress.LoadComplete) {
	for _, o := range m {
		o.OnLoadComplete(e)
	}
}
func (m multiObserver) OnDiscoveryProgress(e progress.DiscoveryProgress) {
	for _, o := range m {
		o.OnDiscoveryProgress(e)
	}
}
func (m multiObserver) OnRunComplete(e progress.RunComplete) {
	for _, o := range m {
		o.OnRunComplete(e)
	}
}
func (m multiObserver) OnRunFailed(e progress.RunFailed) {
	for _, o := range m {
		o.OnRunFailed(e)
	}
}

// executeAndRecord runs a triggered run to completion and records its
// outcome in the registry and (if configured) the run store. It never
// returns an error to its caller: the monitor API already answered the
// trigger request before this goroutine starts.
func executeAndRecord(id string, cfg *config.Config, registry *monitor.Registry, runRepo *repository.RunRepository) {
	if runRepo != nil {
		if err := createRunRow(runRepo, id, cfg); err != nil {
			log.Printf("failed to record run %s: %v", id, err)
		}
	}
	obs := registry.Observer(id)
	result, err := executeRun(cfg, obs)
	if err != nil {
		if runRepo != nil {
			runRepo.Fail(id, err, time.Now())
		}
		return
	}
	if runRepo != nil {
		if err := persistRun(runRepo, id, result); err != nil {
			log.Printf("failed to persist run %s: %v", id, err)
		}
	}
}

// createRunRow inserts a run in the "running" state before any clustering
// work begins, so a crash mid-run still leaves a record behind.
func createRunRow(runRepo *repository.RunRepository, id string, cfg *config.Config) error {
	return runRepo.CreateRunning(models.Run{
		ID:          id,
		InputPath:   cfg.InputPath,
		MaxDist:     cfg.MaxDist,
		MinDensity:  cfg.MinDensity,
		MaxAngle:    cfg.MaxAngle,
		SegmentSize: cfg.SegmentSize,
		Mode:        string(cfg.Mode),
		StartedAt:   time.Now(),
	})
}

func persistRun(runRepo *repository.RunRepository, id string, result corridor.Result) error {
	clustered := 0
	for _, c := range result.Corridors {
		clustered += len(c.Cluster.Members) + 1
	}
	if err := runRepo.Complete(id, len(result.Corridors), clustered, len(result.NonClustered), time.Now()); err != nil {
		return err
	}

	records := make([]models.Corridor, len(result.Corridors))
	for i, c := range result.Corridors {
		records[i] = models.Corridor{
			RunID:      id,
			CorridorID: c.ID,
			Weight:     c.Weight,
			StartX:     c.Start.X,
			StartY:     c.Start.Y,
			EndX:       c.End.X,
			EndY:       c.End.Y,
		}
	}
	return runRepo.InsertCorridors(id, records)
}

// executeRun runs the full pipeline: ingest, bucket, discover, finalize,
// export. It is the single code path shared by the CLI's direct invocation
// and the monitor API's trigger endpoint.
func executeRun(cfg *config.Config, obs progress.Observer) (corridor.Result, error) {
	start := time.Now()

	r, closeInput, err := openInput(cfg.InputPath)
	if err != nil {
		return corridor.Result{}, fmt.Errorf("opening input: %w", err)
	}
	defer closeInput()

	odLines, err := ingest.Parse(r)
	if err != nil {
		obs.OnRunFailed(progress.RunFailed{Err: err, Elapsed: time.Since(start)})
		return corridor.Result{}, fmt.Errorf("parsing input: %w", err)
	}

	store := spatial.NewAngleBucketedStore(cfg.MaxAngle)
	for _, od := range odLines {
		store.Add(od.ToTrajectory(cfg.SegmentSize))
	}

	obs.OnLoadComplete(progress.LoadComplete{
		Trajectories: len(odLines),
		Buckets:      len(store.Buckets()),
		Elapsed:      time.Since(start),
	})

	params := cluster.Params{
		MaxDist:     cfg.MaxDist,
		MinDensity:  cfg.MinDensity,
		MaxAngle:    cfg.MaxAngle,
		SegmentSize: cfg.SegmentSize,
	}

	progressFn := func(done int) {
		obs.OnDiscoveryProgress(progress.DiscoveryProgress{
			TrajectoriesDone:  done,
			TrajectoriesTotal: len(odLines),
			Elapsed:           time.Since(start),
		})
	}

	var outcome discovery.Outcome
	if cfg.Mode == config.ModeParallel {
		outcome = discovery.Parallel(store, params, cfg.Workers, progressFn)
	} else {
		outcome = discovery.Serial(store, params, progressFn)
	}

	q := queue.New()
	for _, c := range outcome.Clusters {
		q.Push(c)
	}
	for _, m := range outcome.NonClusteredAll {
		q.PushNonClustered(m)
	}

	result := corridor.Finalize(q, cfg.MinDensity)

	if err := writeOutputs(cfg, result); err != nil {
		obs.OnRunFailed(progress.RunFailed{Err: err, Elapsed: time.Since(start)})
		return corridor.Result{}, fmt.Errorf("writing outputs: %w", err)
	}

	clustered := 0
	for _, c := range result.Corridors {
		clustered += len(c.Cluster.Members) + 1
	}
	obs.OnRunComplete(progress.RunComplete{
		Corridors:            len(result.Corridors),
		ClusteredSegments:    clustered,
		NonClusteredSegments: len(result.NonClustered),
		Elapsed:              time.Since(start),
	})

	return result, nil
}

func openInput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { f.Close() }, nil
}

func exportMode(m config.Mode) export.Mode {
	if m == config.ModeParallel {
		return export.Parallel
	}
	return export.Serial
}

func writeOutputs(cfg *config.Config, result corridor.Result) error {
	p := export.Params{
		MaxDist:     cfg.MaxDist,
		MinDensity:  cfg.MinDensity,
		MaxAngle:    cfg.MaxAngle,
		SegmentSize: cfg.SegmentSize,
		Mode:        exportMode(cfg.Mode),
	}

	dir := filepath.Dir(cfg.InputPath)

	if err := writeFile(filepath.Join(dir, export.CorridorListFilename(cfg.InputPath, p)), func(f *os.File) error {
		return export.WriteCorridorList(f, result.Corridors)
	}); err != nil {
		return err
	}

	if err := writeFile(filepath.Join(dir, export.SegmentListNewFilename(cfg.InputPath, p)), func(f *os.File) error {
		return export.WriteSegmentListNew(f, result.Corridors, result.NonClustered)
	}); err != nil {
		return err
	}

	return writeFile(filepath.Join(dir, export.SegmentListOldFilename(cfg.InputPath, p)), func(f *os.File) error {
		return export.WriteSegmentListOld(f, result.Corridors, result.NonClustered)
	})
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return write(f)
}

func printSummary(result corridor.Result) {
	s := summary.Summarize(result.Corridors)
	log.Printf("corridors: %d, non-clustered segments: %d", s.Count, len(result.NonClustered))
	if s.Count == 0 {
		return
	}
	log.Printf("corridor weight: mean=%.1f stddev=%.1f median=%.1f range=[%.0f,%.0f] concentration=%.3f bits",
		s.MeanWeight, s.StdDevWeight, s.MedianWeight, s.Min, s.Max, s.WeightConcentration)
}
