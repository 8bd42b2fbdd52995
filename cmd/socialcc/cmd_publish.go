package main

import (
	"fmt"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/spboyer/socialcc/internal/llm"
	"github.com/spboyer/socialcc/internal/publish"
	"github.com/spf13/cobra"
)

var (
	publishModel       string
	publishAccountURL  string
	publishContainer   string
	publishArchiveOnly bool
	publishSAS         bool
)

func newPublishCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Archive a model's run files and upload them to Azure Blob Storage",
		Long: `Pack the dialogue, judge, evaluation and result files of one model into a
.tar.zst archive under <output>/publish and upload it to a blob container.
Authentication uses the Azure CLI login or a managed identity unless
--sas is given.`,
		Args: cobra.NoArgs,
		RunE: publishCommandE,
	}

	cmd.Flags().StringVar(&publishModel, "agent2-model", "", "Model under evaluation (Agent 2)")
	cmd.Flags().StringVar(&publishAccountURL, "account-url", "", "Storage account URL (default from .socialcc.yaml)")
	cmd.Flags().StringVar(&publishContainer, "container", "", "Blob container (default from .socialcc.yaml)")
	cmd.Flags().BoolVar(&publishArchiveOnly, "archive-only", false, "Write the archive without uploading it")
	cmd.Flags().BoolVar(&publishSAS, "sas", false, "The account URL carries a SAS token; do not use Azure credentials")

	return cmd
}

func publishCommandE(cmd *cobra.Command, _ []string) error {
	if err := requireModel(publishModel); err != nil {
		return err
	}
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	p := newPipeline(e, publishModel, nil)
	opts := publish.Options{
		Base:       e.cfg.OutputDir(),
		Model:      publishModel,
		Files:      p.Layout().Artifacts(),
		ArchiveDir: filepath.Join(e.cfg.OutputDir(), "publish"),
	}

	if !publishArchiveOnly {
		accountURL := firstNonEmpty(publishAccountURL, e.cfg.Publish.AccountURL)
		container := firstNonEmpty(publishContainer, e.cfg.Publish.Container)

		var cred azcore.TokenCredential
		if !publishSAS {
			cred, err = llm.NewCredential(llm.AuthAAD)
			if err != nil {
				return err
			}
		}

		opts.Uploader, err = publish.NewUploader(accountURL, container, cred, e.logger)
		if err != nil {
			return err
		}
	}

	res, err := publish.Publish(cmd.Context(), opts, e.logger)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Archived %d files to %s\n", len(res.Files), res.ArchivePath) //nolint:errcheck
	if res.Blob != "" {
		fmt.Fprintf(w, "Uploaded as %s\n", res.Blob) //nolint:errcheck
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
