package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tieubaoca/pdfchat-be/service"
	"github.com/tieubaoca/pdfchat-be/utils"
)

// extractCmd runs the document extractor against a local file, useful to
// check what text a PDF yields before uploading it.
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract text from a local PDF file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}

		pdfService := service.NewPDFService()
		content, err := pdfService.Extract(data, service.MimeTypePDF)
		if err != nil {
			log.Fatalf("Failed to extract: %v", err)
		}

		fmt.Printf("Pages: %d\n", content.PageCount)
		fmt.Printf("Characters: %d\n", utils.CharCount(content.Text))
		if content.Info.Title != "" {
			fmt.Printf("Title: %s\n", content.Info.Title)
		}
		if content.Info.Author != "" {
			fmt.Printf("Author: %s\n", content.Info.Author)
		}
		fmt.Println()
		fmt.Println(content.Text)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
