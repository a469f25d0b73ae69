package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/kcx/pkg/kcx/lang"
)

var detectCmd = &cobra.Command{
	Use:   "detect [snippet...]",
	Short: "Identify the programming language of a title or code snippet",
	Long: "Checks --title and --url for a language name first. Otherwise the snippet " +
		"(joined arguments) is sent to the configured language model.",
	Run: runDetect,
}

func init() {
	detectCmd.Flags().String("title", "", "Video title to check for a language name")
	detectCmd.Flags().String("url", "", "Video URL to check for a language name")
	RootCmd.AddCommand(detectCmd)
}

type detection struct {
	Language string `json:"language"`
	Resolved bool   `json:"resolved"`
	Via      string `json:"via,omitempty"`
}

func runDetect(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	url, _ := cmd.Flags().GetString("url")
	snippet := strings.Join(args, " ")
	if title == "" && url == "" && snippet == "" {
		exitErr("detect", fmt.Errorf("nothing to classify: pass a snippet, --title or --url"))
	}

	comp := loadComponents()
	d := detect(cmd.Context(), comp.Classifier, title, url, snippet)

	w := cmd.OutOrStdout()
	if formatFlag != "text" {
		if err := printJSON(w, d); err != nil {
			exitErr("write output", err)
		}
		return
	}
	if !d.Resolved {
		fmt.Fprintln(w, "unresolved")
		return
	}
	fmt.Fprintf(w, "%s (%s)\n", d.Language, d.Via)
}

// detect tries the title, then the URL, then the model.
func detect(ctx context.Context, c *lang.Classifier, title, url, snippet string) detection {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, h := range []struct{ via, text string }{{"title", title}, {"url", url}} {
		if h.text == "" {
			continue
		}
		if l, ok := c.ClassifyByHint(h.text); ok {
			return detection{Language: l.Tag(), Resolved: true, Via: h.via}
		}
	}
	if snippet != "" {
		if l, ok := c.ClassifyByModel(ctx, snippet); ok {
			return detection{Language: l.Tag(), Resolved: true, Via: "model"}
		}
	}
	return detection{}
}
