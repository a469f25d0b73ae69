package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cognicore/kcx/pkg/kcx/export"
	"github.com/cognicore/kcx/pkg/kcx/lang"
	"github.com/cognicore/kcx/pkg/kcx/metadata"
	"github.com/cognicore/kcx/pkg/kcx/parser"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file|->",
	Short: "Classify source text with a known language, skipping detection",
	Long:  "Every input line is one fragment; its line number is used as the offset.",
	Args:  cobra.ExactArgs(1),
	Run:   runLex,
}

func init() {
	lexCmd.Flags().StringP("lang", "l", "", "Language: c, cpp, java or python (required)")
	lexCmd.Flags().String("url", "", "Source URL used in timestamp links")
	lexCmd.MarkFlagRequired("lang")
	RootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) {
	tag, _ := cmd.Flags().GetString("lang")
	url, _ := cmd.Flags().GetString("url")

	language, ok := lang.Parse(tag)
	if !ok {
		exitErr("parse language", fmt.Errorf("unknown language %q", tag))
	}

	in, closeInput, err := openInput(cmd.Context(), args[0], false)
	if err != nil {
		exitErr("open input", err)
	}
	defer closeInput()

	comp := loadComponents()
	doc, err := lex(in, metadata.Video{URL: url}, language, comp.Config.Streams)
	if err != nil {
		exitErr("lex", err)
	}

	w := cmd.OutOrStdout()
	if formatFlag == "text" {
		err = printComponents(w, doc.KnowledgeComponents)
	} else {
		err = export.Encode(w, doc)
	}
	if err != nil {
		exitErr("write output", err)
	}
}

// lex feeds every line of r to a dispatcher bound to language.
func lex(r io.Reader, video metadata.Video, language lang.Language, streams parser.StreamNames) (export.Document, error) {
	d := parser.NewDispatcher(streams)
	if err := d.Bind(video.URL, language); err != nil {
		return export.Document{}, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	offset := 0
	for scanner.Scan() {
		d.Parse(scanner.Text(), offset)
		offset++
	}
	if err := scanner.Err(); err != nil {
		return export.Document{}, fmt.Errorf("read input: %w", err)
	}

	tag := language.Tag()
	return export.Document{
		Video:               video,
		Language:            &tag,
		KnowledgeComponents: d.Snapshot().Components(),
	}, nil
}
