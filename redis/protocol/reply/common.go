package reply

const (
	CRLF = "\r\n"
)

var (
	nullBulkBytes       = []byte("$-1\r\n")
	emptyMultiBulkBytes = []byte("*0\r\n")

	okStatusDataString = "OK"
	okStatusBytes      = []byte("+OK\r\n")

	nilDataString       = "(nil)"
	emptyListDataString = "(empty list or set)"
)
