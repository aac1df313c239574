// The MIT License (MIT)
//
// Copyright (c) 2016, 2017, 2018 Fabian Wenzelmann
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package fuzzydl

import "sort"

// InsertSorted returns the sorted union of values (which must be sorted and
// free of duplicates) and newValues.
func InsertSorted(values []string, newValues map[string]struct{}) []string {
	newSlice := make([]string, 0, len(newValues))
	for value := range newValues {
		newSlice = append(newSlice, value)
	}
	sort.Strings(newSlice)
	return unionSorted(values, newSlice)
}

func unionSorted(a, b []string) []string {
	n, m := len(a), len(b)
	res := make([]string, 0, n+m)
	i, j := 0, 0
L:
	for {
		switch {
		case i < n && j < m:
			switch {
			case a[i] < b[j]:
				res = append(res, a[i])
				i++
			case a[i] > b[j]:
				res = append(res, b[j])
				j++
			default:
				res = append(res, a[i])
				i++
				j++
			}
		case i < n:
			res = append(res, a[i])
			i++
		case j < m:
			res = append(res, b[j])
			j++
		default:
			break L
		}
	}
	return res
}
