package request

type Page struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type Events struct {
	AfterSeq uint64 `form:"afterSeq"`
	Limit    int    `form:"limit"`
}
