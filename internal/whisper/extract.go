package whisper

// extractArgs builds the ffmpeg arguments that pull the first audio stream
// out of a container as a mono 16kHz WAV file, the input format whisper
// resamples from without further conversion.
func extractArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", "0:a:0",
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}
