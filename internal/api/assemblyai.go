package api

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AssemblyAI/assemblyai-go-sdk"
)

// TranscriptionClient wraps the AssemblyAI SDK for speech-to-text.
type TranscriptionClient struct {
	client *assemblyai.Client
}

// NewTranscriptionClient creates an AssemblyAI transcription client.
func NewTranscriptionClient(apiKey string) *TranscriptionClient {
	return &TranscriptionClient{
		client: assemblyai.NewClient(apiKey),
	}
}

// Transcribe uploads audio and waits for the transcript text.
func (c *TranscriptionClient) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, audio, nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("transcribing audio: %w", ErrTimeout)
		}
		return "", fmt.Errorf("transcribing audio: %v: %w", err, ErrProvider)
	}

	if transcript.Text == nil {
		return "", fmt.Errorf("empty transcript: %w", ErrMalformedResponse)
	}

	return *transcript.Text, nil
}
