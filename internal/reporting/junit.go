package reporting

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/spboyer/socialcc/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one model's run.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one rubric.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
}

// JUnitFailure marks a rubric where some judge outputs had no score.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError marks a rubric with no usable score at all.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a run report to JUnit XML format.
func ConvertToJUnit(rep *RunReport) *JUnitTestSuites {
	suite := JUnitTestSuite{
		Name:  "socialcc/" + rep.Summary.Model,
		Tests: len(models.Rubrics),
		Properties: []JUnitProperty{
			{Name: "model", Value: rep.Summary.Model},
		},
	}

	for _, r := range models.Rubrics {
		mean := rep.Summary.Means[r]
		suite.Properties = append(suite.Properties, JUnitProperty{
			Name:  r.SummaryColumn(),
			Value: fmt.Sprintf("%.6f", mean),
		})

		tc := JUnitTestCase{Name: r.Title(), Classname: rep.Summary.Model}

		if s, ok := rep.Stats[r]; ok {
			switch {
			case s.N == 0:
				tc.Error = &JUnitError{
					Message: fmt.Sprintf("%s: no judge output had a score", r.Title()),
					Type:    "NoScores",
				}
				suite.Errors++
			case s.Skipped > 0:
				tc.Failure = &JUnitFailure{
					Message: fmt.Sprintf("%s: mean=%.4f", r.Title(), mean),
					Type:    "MissingScores",
					Body:    InterpretCoverage(s),
				}
				suite.Failures++
			}
		}

		suite.TestCases = append(suite.TestCases, tc)
	}

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		Errors:     suite.Errors,
		TestSuites: []JUnitTestSuite{suite},
	}
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(rep *RunReport, path string) error {
	suites := ConvertToJUnit(rep)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	return os.WriteFile(path, output, 0644)
}
