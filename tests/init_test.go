package tests_test

import (
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/tidewrack/tests/testutils"
)

func TestInitCLI(t *testing.T) {
	testCase := testutils.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "init writes a sample configuration",
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("init", data.Temp().Path())
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output:   expectContains(".clang-tidy"),
				}
			},
		},
		{
			Description: "init refuses to overwrite an existing configuration",
			Setup: func(data test.Data, _ test.Helpers) {
				data.Temp().Save("Checks: '-*'", ".clang-tidy")
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("init", data.Temp().Path())
			},
			Expected: test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
	}

	testCase.Run(t)
}
