// Package plantings renders the 2020 plantings list.
//
// The layout and content templates are embedded at build time and the plant
// names are fixed:
//
//	doc, err := plantings.Render()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc)
package plantings
