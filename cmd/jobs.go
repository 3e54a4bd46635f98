package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List the job roles available for an interview",
	Run: func(_ *cobra.Command, _ []string) {
		config, err := getConfig()
		if err != nil {
			log.Fatalf("getting a config: %s", err)
		}

		cat, err := loadCatalog(config)
		if err != nil {
			log.Fatalf("loading the job catalog: %s", err)
		}

		for _, key := range cat.Keys() {
			job, err := cat.Get(key)
			if err != nil {
				log.Fatalf("reading job %q: %s", key, err)
			}

			fmt.Printf("%-12s %s (%d questions; skills: %s)\n",
				key, job.Title, len(job.Questions), strings.Join(job.Skills, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}
