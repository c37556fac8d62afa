package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/voice"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone and print the transcription",
	Long: `record captures audio with ffmpeg for up to --seconds (Ctrl+C stops early),
optionally saves it as a WAV file and prints the transcribed text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		seconds, _ := cmd.Flags().GetInt("seconds")
		save, _ := cmd.Flags().GetBool("save")
		if seconds <= 0 {
			return fmt.Errorf("--seconds must be positive, got %d", seconds)
		}

		v := e.cfg.Voice
		buf := voice.NewBuffer(voice.NewFFmpegSource(v.FFmpeg), v.Buffer, e.log.Named("voice"))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Recording for up to %ds, speak now...\n", seconds)
		rec, err := buf.RecordFor(cmd.Context(), time.Duration(seconds)*time.Second)
		if err != nil {
			return fmt.Errorf("record: %w", err)
		}
		fmt.Fprintf(out, "Captured %.1fs of audio.\n", rec.Duration().Seconds())

		if save || v.SaveRecordings {
			dir := v.RecordingsDir
			if dir == "" {
				dir = "recordings"
			}
			path, err := voice.SaveWAV(afero.NewOsFs(), dir, rec, time.Now())
			if err != nil {
				return fmt.Errorf("save recording: %w", err)
			}
			fmt.Fprintf(out, "Saved %s\n", path)
		}

		if e.svc.Transcriber == nil {
			return fmt.Errorf("transcription unavailable: %w", e.svc.TranscribeErr)
		}
		// Ctrl+C only ends the capture.
		res, err := e.svc.Transcriber.Transcribe(context.WithoutCancel(cmd.Context()), rec)
		if err != nil {
			return fmt.Errorf("transcribe: %w", err)
		}
		e.log.Debug("transcribed", zap.Int("chars", len(res.Text)))

		fmt.Fprintf(out, "Text:     %s\n", res.Text)
		if res.Language != "" {
			fmt.Fprintf(out, "Language: %s\n", res.Language)
		}
		return nil
	},
}

func init() {
	recordCmd.Flags().IntP("seconds", "s", 20, "Maximum recording length in seconds")
	recordCmd.Flags().Bool("save", false, "Save the recording as a WAV file")
}
