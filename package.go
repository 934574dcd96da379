//
// web service that accepts a case study submission - the questions, the
// student's answers and a raw mark per question from an external scorer -
// and returns capped marks, a 1-7 band per question and overall, and
// structured written feedback ("what went well / what to improve / what
// to add") with a bounded study bundle.
//
// scoring is deterministic: the same submission always produces the same
// feedback, so results can be recomputed for audit.
//
package otffeedback
