package dashboard

import (
	"fmt"
	"net/url"
)

// DefaultLocation is used for job searches when none is given.
const DefaultLocation = "India"

// Link is a named search URL.
type Link struct {
	Name string
	URL  string
}

// CourseLinks returns free-course searches for domain.
func CourseLinks(domain string) []Link {
	q := url.QueryEscape(fmt.Sprintf("free %s course", domain))
	return []Link{
		{"Coursera", "https://www.coursera.org/search?query=" + q + "&price=1"},
		{"edX", "https://www.edx.org/search?q=" + q + "&price=Free"},
		{"Udemy", "https://www.udemy.com/courses/search/?q=" + q + "&price=price-free"},
		{"freeCodeCamp", "https://www.google.com/search?q=site%3Afreecodecamp.org+" + q},
		{"YouTube", "https://www.youtube.com/results?search_query=" + q},
	}
}

// JobLinks returns job portal searches for domain in location.
func JobLinks(domain, location string) []Link {
	if location == "" {
		location = DefaultLocation
	}
	q := url.QueryEscape(fmt.Sprintf("%s jobs in %s", domain, location))
	loc := url.QueryEscape(location)
	return []Link{
		{"LinkedIn", "https://www.linkedin.com/jobs/search/?keywords=" + q + "&location=" + loc},
		{"Indeed", "https://in.indeed.com/jobs?q=" + q + "&l=" + loc},
		{"Glassdoor", "https://www.glassdoor.co.in/Job/jobs.htm?sc.keyword=" + q + "&locT=C&locId=115&locKeyword=" + loc},
		{"Naukri", "https://www.naukri.com/" + q + "-jobs-in-" + loc},
	}
}
