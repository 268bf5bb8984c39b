package actions

import "net/http"

func (as *ActionSuite) Test_HomeHandler() {
	res := as.JSON("/").Get()
	as.Equal(http.StatusOK, res.Code)
	as.Contains(res.Body.String(), "Welcome")
}

func (as *ActionSuite) Test_StatusHandler() {
	res := as.JSON("/status").Get()
	as.Equal(http.StatusNoContent, res.Code)
}

func (as *ActionSuite) Test_Config() {
	res := as.JSON("/config/claim-statuses").Get()
	as.Equal(http.StatusOK, res.Code)
	as.Contains(res.Body.String(), "DRAFT")
	as.Contains(res.Body.String(), "SETTLED")

	res = as.JSON("/config/care-types").Get()
	as.Equal(http.StatusOK, res.Code)
	as.Contains(res.Body.String(), "AMBULATORY")
}
