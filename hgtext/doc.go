// Package hgtext reads and writes hypergraphs in a line-oriented text format.
//
// Format:
//
//	# comment
//	START 0
//	STATE 7("unused")
//	0 1(a) 2 0.5
//	2 3("x y" z) 4 0.25
//	2 4 1
//	FINAL 4
//
//   - An arc line is "tail0 tail1 ... head weight". The weight is mandatory
//     and is parsed with weight.Parse, so feature literals such as
//     "0.5[3=1,7=-2]" are accepted for feature weights.
//   - A state token is "<id>", "<id>(<label>)" or "<id>(<in> <out>)". Ids are
//     the StateIDs of the container; gaps become structural states. A state
//     must carry the same label at every mention, but it need only carry it once.
//   - Labels are bare tokens or quoted with ' or ". Quoted labels support the
//     escapes \n \t \r \\ \" and \'. The reserved spellings <eps>, <rho>,
//     <phi> and <sigma> denote the special symbols.
//   - START and FINAL mark the start and final state. STATE declares a state
//     that no arc mentions. "FINAL <id> <weight>" gives the final state a
//     weight: Read adds a fresh state after the numbered ones, makes it final
//     and links it from <id> with an arc carrying the weight.
//
// Write emits START, then STATE lines for unmentioned states in ascending
// order, then the arcs in insertion order, then FINAL. Its output is
// deterministic, and Read(Write(h)) rebuilds h with the same StateIDs and ArcIDs.
package hgtext
