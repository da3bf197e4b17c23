package email

const (
	subjectExportReady  = "Sua planilha de cotações está pronta"
	subjectExportFailed = "Falha ao gerar sua planilha de cotações"
)
