// Harness offline: genera instancias sinteticas de (proyectos, candidatos),
// corre el solver estable y verifica que no queden pares bloqueantes.
// Sale con codigo distinto de cero ante cualquier inestabilidad.
package main

import (
	"flag"
	"fmt"
	"os"

	"dream-match/internal/domain"
	"dream-match/internal/service"
)

func main() {
	seed := flag.Int64("seed", 42, "seed del generador sintetico")
	rounds := flag.Int("rounds", 20, "cantidad de instancias a verificar")
	numProjects := flag.Int("projects", 5, "proyectos por instancia")
	numCandidates := flag.Int("candidates", 8, "candidatos por instancia")
	flag.Parse()

	stages := []domain.ProjectStage{
		domain.StageIdeation,
		domain.StageTeamFormation,
		domain.StageActiveDevelopment,
		domain.StageLaunch,
	}

	matcher := service.NewStableMatcher()
	unstable := 0

	for round := 0; round < *rounds; round++ {
		gen := service.NewSyntheticDNAGenerator(*seed + int64(round))

		projects := make([]domain.MatchProject, 0, *numProjects)
		projectIDs := make([]string, 0, *numProjects)
		for i := 0; i < *numProjects; i++ {
			id := fmt.Sprintf("p%02d", i)
			projects = append(projects, gen.GenerateProject(id, stages[i%len(stages)]))
			projectIDs = append(projectIDs, id)
		}

		candidates := make([]domain.MatchCandidate, 0, *numCandidates)
		for i := 0; i < *numCandidates; i++ {
			candidates = append(candidates, gen.GenerateCandidate(fmt.Sprintf("c%02d", i), projectIDs...))
		}

		matches := matcher.RunStableMatching(projects, candidates)
		blocking := matcher.FindBlockingPairs(projects, candidates, matches)

		if len(blocking) > 0 {
			unstable++
			fmt.Printf("round %d: UNSTABLE, %d blocking pairs: %v\n", round, len(blocking), blocking)
			continue
		}
		fmt.Printf("round %d: stable, %d/%d projects matched\n", round, len(matches), *numProjects)
	}

	if unstable > 0 {
		fmt.Printf("FAILED: %d/%d rounds unstable\n", unstable, *rounds)
		os.Exit(1)
	}
	fmt.Printf("OK: %d rounds stable\n", *rounds)
}
