package usecase

// RunModeAndConfidence exposes mode derivation for tests
var RunModeAndConfidence = runModeAndConfidence
