package cli

var PrintCompletionReport = printCompletionReport
