// Package header extracts the documentation block at the top of a filter
// table and turns it into accessor documentation.
//
// A table header looks like:
//
//	# Kong (2007): 61 pt Hankel J0-J1 filter
//	# =======================================
//	#
//	# Designed for dipole antenna radiation in a conductive medium.
//	#
//	# This file is part of libdlf which is licensed under CC-BY-4.0.
//
// The first line is the title. The underline and bare "#" lines become blank
// lines, and the line containing the sentinel phrase ends the header.
package header
