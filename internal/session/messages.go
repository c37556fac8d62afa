package session

const (
	msgPasteJD       = "Please paste a job description to begin."
	msgNewJD         = "Please enter a new job description."
	msgConfirmOrRe   = "Please enter either 'yes' to confirm or 'recheck' to identify again"
	msgReadyHR       = "Are you ready to begin the HR round? (Type 'yes' to start)"
	msgTypeYesHR     = "Please type 'yes' to begin the HR round"
	msgNoHR          = "Could not generate HR questions. Type 'yes' to try again."
	msgHRDone        = "HR round complete! Ready for technical? Type 'yes' to proceed"
	msgTypeYesTech   = "Please type 'yes' to proceed to the technical round"
	msgNoTech        = "Could not generate technical questions. Type 'yes' to try again."
	msgUseRecording  = "Use start recording and stop & submit to answer."
	msgNotInRound    = "Recording is only available during the HR and technical rounds."
	msgAlreadyRec    = "Already recording."
	msgNotRecording  = "Not recording. Start recording first."
	msgStartFailed   = "Could not start recording. Check your microphone and try again."
	msgRecording     = "Recording... speak now, then stop & submit."
	msgNoAudio       = "No audio recorded. Please try again."
	msgNoTranscript  = "Could not transcribe your answer. Please try again."
	msgComplete      = "Interview complete!"
	msgEnterID       = "Please enter your candidate ID to view your results"
	msgIDVerified    = "Candidate ID verified. Type 'show result' to view your interview dashboard"
	msgIDWrong       = "Incorrect candidate ID. Please try again."
	msgShowResult    = "Type 'show result' to view your interview dashboard"
	msgFinished      = "Interview finished. Type 'start new interview' to begin again."
	msgNoTranscriber = "Transcription is not configured."
)
